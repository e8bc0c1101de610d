package services

import (
	"bytes"
	"fmt"

	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ComprobanteService renders printable PDFs for the cashier desk:
// payment receipts and reconciliation sheets.
type ComprobanteService struct{}

func NewComprobanteService() *ComprobanteService {
	return &ComprobanteService{}
}

// GenerarComprobantePago renders the receipt handed to the patient
func (s *ComprobanteService) GenerarComprobantePago(data *models.ComprobanteData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Clinica - Comprobante de Pago", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generado: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Payment box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Datos del Pago", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Folio: %d", data.Pago.IDPago), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Fecha: %s", timeutil.FormatClinic(data.Pago.FechaPago, timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Monto: $%.2f", data.Pago.Monto), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Metodo: %s", data.Pago.MetodoPago), "RB", 1, "L", false, 0, "")
	if data.Pago.Referencia != nil && *data.Pago.Referencia != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Referencia: %s", *data.Pago.Referencia), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Patient box
	if data.Paciente != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Paciente", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 7, fmt.Sprintf("Nombre: %s %s", data.Paciente.Nombre, data.Paciente.Apellido), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Correo: %s", data.Paciente.Correo), "RB", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	// Quote box, only for payments applied to a quote
	if data.Presupuesto != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Presupuesto", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(63, 7, fmt.Sprintf("Folio: %d", data.Presupuesto.IDPresupuesto), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(63, 7, fmt.Sprintf("Total: $%.2f", data.Presupuesto.Total), "B", 0, "L", false, 0, "")
		pdf.CellFormat(64, 7, fmt.Sprintf("Estado: %s", data.Presupuesto.EstadoPresupuesto), "RB", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "Este comprobante no es una factura fiscal.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render comprobante PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerarArqueoPDF renders a saved reconciliation as the sheet the
// front desk prints and signs.
func (s *ComprobanteService) GenerarArqueoPDF(a *models.Arqueo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Clinica - Arqueo de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Folio %d - %s %s", a.IDArqueo, a.Fecha, a.HoraGeneracion), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Totales por Metodo", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, "Metodo", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	filas := []struct {
		metodo string
		total  float64
	}{
		{"Efectivo", a.TotalEfectivo},
		{"Tarjeta", a.TotalTarjeta},
		{"Transferencia", a.TotalTransferencia},
	}
	for _, f := range filas {
		pdf.CellFormat(95, 7, f.metodo, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("$%.2f", f.total), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, "Total General", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 8, fmt.Sprintf("$%.2f", a.TotalGeneral), "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Cantidad de pagos", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("%d", a.CantidadPagos), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, fmt.Sprintf("Responsable: %s", a.UsuarioRegistro), "", 1, "L", false, 0, "")
	if a.Observaciones != nil && *a.Observaciones != "" {
		pdf.MultiCell(190, 7, fmt.Sprintf("Observaciones: %s", *a.Observaciones), "", "L", false)
	}

	pdf.Ln(15)
	pdf.CellFormat(190, 7, "_________________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, "Firma del responsable", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render arqueo PDF: %w", err)
	}
	return buf.Bytes(), nil
}
