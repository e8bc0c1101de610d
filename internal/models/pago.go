package models

import "time"

// Payment methods accepted at the cashier desk
const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoTarjeta       = "TARJETA"
	MetodoTransferencia = "TRANSFERENCIA"
)

// Pago is immutable once created; there is no update or delete path.
type Pago struct {
	IDPago        int       `json:"idPago"`
	IDPresupuesto *int      `json:"idPresupuesto"`
	IDPaciente    int       `json:"idPaciente"`
	Monto         float64   `json:"monto"`
	MetodoPago    string    `json:"metodoPago"`
	FechaPago     time.Time `json:"fechaPago"`
	Referencia    *string   `json:"referencia"`
}

type CrearCobroRequest struct {
	IDCita        *int    `json:"idCita"`
	IDPaciente    int     `json:"idPaciente"`
	IDPresupuesto *int    `json:"idPresupuesto"`
	Monto         float64 `json:"monto"`
	MetodoPago    string  `json:"metodoPago"`
	Referencia    *string `json:"referencia"`
}

type CrearCobroResponse struct {
	Mensaje string `json:"mensaje"`
	IDCobro int    `json:"idCobro"`
}

// ComprobanteData joins a payment with its quote and patient for the
// PDF receipt.
type ComprobanteData struct {
	Pago        *Pago
	Paciente    *Paciente
	Presupuesto *Presupuesto
}
