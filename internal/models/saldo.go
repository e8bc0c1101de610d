package models

// TratamientoPendiente is one outstanding quote line in the balance detail
type TratamientoPendiente struct {
	IDPresupuesto     int     `json:"idPresupuesto"`
	IDTratamiento     int     `json:"idTratamiento"`
	NombreTratamiento string  `json:"nombreTratamiento"`
	Cantidad          int     `json:"cantidad"`
	PrecioUnitario    float64 `json:"precioUnitario"`
	PrecioTotal       float64 `json:"precioTotal"`
}

// Saldo is a patient's outstanding balance. A patient with no quotes
// and no payments reports zeros, never an error.
type Saldo struct {
	IDPaciente             int                    `json:"idPaciente"`
	TotalTratamientos      float64                `json:"totalTratamientos"`
	TotalPagado            float64                `json:"totalPagado"`
	SaldoPendiente         float64                `json:"saldoPendiente"`
	TratamientosPendientes []TratamientoPendiente `json:"tratamientosPendientes"`
}
