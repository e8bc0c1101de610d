package models

import "time"

// Arqueo is one saved cash-drawer reconciliation. Fecha and
// HoraGeneracion are kept as clinic-local strings (YYYY-MM-DD,
// HH:MM:SS) so saved snapshots round-trip exactly.
type Arqueo struct {
	IDArqueo           int       `json:"idArqueo"`
	Fecha              string    `json:"fecha"`
	HoraGeneracion     string    `json:"horaGeneracion"`
	TotalEfectivo      float64   `json:"totalEfectivo"`
	TotalTarjeta       float64   `json:"totalTarjeta"`
	TotalTransferencia float64   `json:"totalTransferencia"`
	TotalGeneral       float64   `json:"totalGeneral"`
	CantidadPagos      int       `json:"cantidadPagos"`
	UsuarioRegistro    string    `json:"usuarioRegistro"`
	Observaciones      *string   `json:"observaciones"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PagoResumen is one grouped row of the payment window query:
// per-method count and sum since the reconciliation checkpoint.
type PagoResumen struct {
	MetodoPago string  `json:"metodoPago"`
	Cantidad   int     `json:"cantidad"`
	Total      float64 `json:"total"`
}

// ArqueoSnapshot is the read-only preview computed by Generate.
// Nothing is written until the cashier signs off and saves it.
type ArqueoSnapshot struct {
	Fecha              string        `json:"fecha"`
	HoraGeneracion     string        `json:"horaGeneracion"`
	TotalEfectivo      float64       `json:"totalEfectivo"`
	TotalTarjeta       float64       `json:"totalTarjeta"`
	TotalTransferencia float64       `json:"totalTransferencia"`
	TotalGeneral       float64       `json:"totalGeneral"`
	CantidadPagos      int           `json:"cantidadPagos"`
	UsuarioRegistro    string        `json:"usuarioRegistro"`
	Observaciones      string        `json:"observaciones,omitempty"`
	Desglose           []PagoResumen `json:"desglose"`
}

type GenerarArqueoRequest struct {
	UsuarioRegistro string `json:"usuarioRegistro"`
	Observaciones   string `json:"observaciones"`
}

type GuardarArqueoRequest struct {
	Fecha              string  `json:"fecha"`
	HoraGeneracion     string  `json:"horaGeneracion"`
	TotalEfectivo      float64 `json:"totalEfectivo"`
	TotalTarjeta       float64 `json:"totalTarjeta"`
	TotalTransferencia float64 `json:"totalTransferencia"`
	TotalGeneral       float64 `json:"totalGeneral"`
	CantidadPagos      int     `json:"cantidadPagos"`
	UsuarioRegistro    string  `json:"usuarioRegistro"`
	Observaciones      *string `json:"observaciones"`
}

type GuardarArqueoResponse struct {
	Mensaje  string `json:"mensaje"`
	IDArqueo int    `json:"idArqueo"`
}
