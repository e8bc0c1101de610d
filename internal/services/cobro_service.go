package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"clinica-caja/internal/metrics"
	"clinica-caja/internal/models"
	"clinica-caja/internal/sigcd"
)

type PagoStore interface {
	Create(ctx context.Context, p *models.Pago) error
	GetByID(ctx context.Context, id int) (*models.Pago, error)
	ListByPaciente(ctx context.Context, idPaciente int) ([]*models.Pago, error)
	GetComprobanteData(ctx context.Context, idPago int) (*models.ComprobanteData, error)
}

// CitasClient is the slice of the SIGCD client the cashier flow uses
type CitasClient interface {
	ObtenerCitasPendientes(ctx context.Context) (json.RawMessage, error)
	ConfirmarPago(ctx context.Context, idCita int, pago sigcd.ConfirmarPagoRequest) error
}

type CobroService struct {
	Pagos     PagoStore
	Pacientes PacienteStore
	SIGCD     CitasClient
}

func NewCobroService(pagos PagoStore, pacientes PacienteStore, sigcdClient CitasClient) *CobroService {
	return &CobroService{Pagos: pagos, Pacientes: pacientes, SIGCD: sigcdClient}
}

// RegistrarCobro writes the payment and, when the request references an
// appointment, notifies SIGCD best-effort. The local payment stays
// committed even when the confirmation fails.
func (s *CobroService) RegistrarCobro(ctx context.Context, req *models.CrearCobroRequest) (*models.CrearCobroResponse, error) {
	if req.IDPaciente <= 0 {
		return nil, models.NewValidationError("idPaciente es obligatorio")
	}
	if req.Monto <= 0 {
		return nil, models.NewValidationError("monto debe ser mayor a cero")
	}
	metodo := strings.ToUpper(strings.TrimSpace(req.MetodoPago))
	if metodo == "" {
		return nil, models.NewValidationError("metodoPago es obligatorio")
	}

	if _, err := s.Pacientes.GetByID(ctx, req.IDPaciente); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("paciente %d no existe", req.IDPaciente)
		}
		return nil, err
	}

	pago := &models.Pago{
		IDPresupuesto: req.IDPresupuesto,
		IDPaciente:    req.IDPaciente,
		Monto:         req.Monto,
		MetodoPago:    metodo,
		Referencia:    req.Referencia,
	}
	if err := s.Pagos.Create(ctx, pago); err != nil {
		return nil, err
	}

	metrics.CobrosRegistrados.WithLabelValues(metodo).Inc()
	log.Printf("[Caja] Cobro %d registrado: paciente %d, %.2f %s", pago.IDPago, pago.IDPaciente, pago.Monto, metodo)

	if req.IDCita != nil && s.SIGCD != nil {
		confirmacion := sigcd.ConfirmarPagoRequest{
			IDPago:      pago.IDPago,
			MontoPagado: pago.Monto,
			MetodoPago:  metodo,
			Origen:      "caja",
			IDPaciente:  pago.IDPaciente,
		}
		if err := s.SIGCD.ConfirmarPago(ctx, *req.IDCita, confirmacion); err != nil {
			metrics.UpstreamErrors.WithLabelValues("sigcd").Inc()
			log.Printf("[SIGCD] No se pudo confirmar el pago de la cita %d: %v", *req.IDCita, err)
		}
	}

	return &models.CrearCobroResponse{
		Mensaje: "Cobro registrado correctamente",
		IDCobro: pago.IDPago,
	}, nil
}

// CitasPendientes proxies the SIGCD pending-appointments listing. This
// is a read-through: an upstream failure surfaces as a 502.
func (s *CobroService) CitasPendientes(ctx context.Context) (json.RawMessage, error) {
	body, err := s.SIGCD.ObtenerCitasPendientes(ctx)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("sigcd").Inc()
		return nil, &models.UpstreamError{Service: "SIGCD", Err: err}
	}
	return body, nil
}

func (s *CobroService) GetCobro(ctx context.Context, id int) (*models.Pago, error) {
	return s.Pagos.GetByID(ctx, id)
}

func (s *CobroService) ListCobrosPorPaciente(ctx context.Context, idPaciente int) ([]*models.Pago, error) {
	return s.Pagos.ListByPaciente(ctx, idPaciente)
}

func (s *CobroService) GetComprobanteData(ctx context.Context, idPago int) (*models.ComprobanteData, error) {
	return s.Pagos.GetComprobanteData(ctx, idPago)
}
