package models

import "time"

type Presupuesto struct {
	IDPresupuesto     int       `json:"idPresupuesto"`
	IDPaciente        int       `json:"idPaciente"`
	FechaEmision      time.Time `json:"fechaEmision"`
	FechaVigencia     time.Time `json:"fechaVigencia"`
	Total             float64   `json:"total"`
	EstadoPresupuesto string    `json:"estadoPresupuesto"`
	NombrePaciente    string    `json:"nombrePaciente,omitempty"` // joined for listings
}

type DetallePresupuesto struct {
	IDTratamiento     int     `json:"idTratamiento"`
	NombreTratamiento string  `json:"nombreTratamiento,omitempty"`
	Cantidad          int     `json:"cantidad"`
	PrecioUnitario    float64 `json:"precioUnitario"`
	PrecioTotal       float64 `json:"precioTotal"`
}

// TratamientoSolicitado is one requested line on a quote request
type TratamientoSolicitado struct {
	IDTratamiento int `json:"idTratamiento"`
	Cantidad      int `json:"cantidad"`
}

type CrearPresupuestoRequest struct {
	IDPaciente     int                     `json:"idPaciente"`
	NombrePaciente string                  `json:"nombrePaciente,omitempty"`
	Tratamientos   []TratamientoSolicitado `json:"tratamientos"`
}

type CrearPresupuestoResponse struct {
	IDPresupuesto int                  `json:"idPresupuesto"`
	IDPaciente    int                  `json:"idPaciente"`
	FechaEmision  time.Time            `json:"fechaEmision"`
	FechaVigencia time.Time            `json:"fechaVigencia"`
	Total         float64              `json:"total"`
	Detalles      []DetallePresupuesto `json:"detalles"`
}

// FilaMatriz is the flat row projection some consumers of the quote
// detail endpoint still expect (one row per line item).
type FilaMatriz struct {
	IDPresup    int       `json:"id_presup"`
	IDPaciente  int       `json:"id_paciente"`
	CveTrat     int       `json:"cve_trat"`
	Cant        int       `json:"cant"`
	PrecioUnit  float64   `json:"precio_unit"`
	PrecioTotal float64   `json:"precio_total"`
	Fecha       time.Time `json:"fecha"`
}

type PresupuestoDetalle struct {
	IDPresupuesto     int                  `json:"idPresupuesto"`
	IDPaciente        int                  `json:"idPaciente"`
	FechaEmision      time.Time            `json:"fechaEmision"`
	FechaVigencia     time.Time            `json:"fechaVigencia"`
	Total             float64              `json:"total"`
	EstadoPresupuesto string               `json:"estadoPresupuesto"`
	Detalles          []DetallePresupuesto `json:"detalles"`
	PresupuestoMatriz []FilaMatriz         `json:"presupuesto_matriz"`
}
