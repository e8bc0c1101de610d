package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"clinica-caja/internal/atencion"
	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"
)

// PresupuestoStore is the slice of the quote repository the service uses
type PresupuestoStore interface {
	CrearConDetalles(ctx context.Context, p *models.Presupuesto, detalles []models.DetallePresupuesto) error
	List(ctx context.Context) ([]*models.Presupuesto, error)
	GetByID(ctx context.Context, id int) (*models.Presupuesto, error)
	GetDetalles(ctx context.Context, idPresupuesto int) ([]models.DetallePresupuesto, error)
}

type PacienteStore interface {
	GetByID(ctx context.Context, id int) (*models.Paciente, error)
	Create(ctx context.Context, p *models.Paciente) error
}

type TratamientoStore interface {
	GetByID(ctx context.Context, id int) (*models.Tratamiento, error)
}

// PresupuestoNotifier forwards quote summaries to Atención
type PresupuestoNotifier interface {
	EnviarPresupuesto(ctx context.Context, resumen atencion.ResumenPresupuesto) error
}

type PresupuestoService struct {
	Repo         PresupuestoStore
	Pacientes    PacienteStore
	Tratamientos TratamientoStore
	Notifier     PresupuestoNotifier

	now func() time.Time
}

func NewPresupuestoService(repo PresupuestoStore, pacientes PacienteStore, tratamientos TratamientoStore, notifier PresupuestoNotifier) *PresupuestoService {
	return &PresupuestoService{
		Repo:         repo,
		Pacientes:    pacientes,
		Tratamientos: tratamientos,
		Notifier:     notifier,
		now:          timeutil.Now,
	}
}

// CrearPresupuesto builds a quote: resolves (or auto-creates) the
// patient, copies each treatment's current price onto the line, skips
// unknown treatments and non-positive quantities, and writes header,
// lines and total atomically. The quote is forwarded to Atención on a
// best-effort basis after commit.
func (s *PresupuestoService) CrearPresupuesto(ctx context.Context, req *models.CrearPresupuestoRequest) (*models.CrearPresupuestoResponse, error) {
	if req.IDPaciente <= 0 && strings.TrimSpace(req.NombrePaciente) == "" {
		return nil, models.NewValidationError("idPaciente es obligatorio")
	}
	if len(req.Tratamientos) == 0 {
		return nil, models.NewValidationError("tratamientos es obligatorio y no puede estar vacío")
	}

	idPaciente, err := s.resolverPaciente(ctx, req)
	if err != nil {
		return nil, err
	}

	var detalles []models.DetallePresupuesto
	for _, linea := range req.Tratamientos {
		if linea.Cantidad <= 0 {
			log.Printf("[Caja] Línea con cantidad %d omitida (tratamiento %d)", linea.Cantidad, linea.IDTratamiento)
			continue
		}

		t, err := s.Tratamientos.GetByID(ctx, linea.IDTratamiento)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				log.Printf("[Caja] Tratamiento %d no existe, línea omitida", linea.IDTratamiento)
				continue
			}
			return nil, err
		}

		detalles = append(detalles, models.DetallePresupuesto{
			IDTratamiento:     t.IDTratamiento,
			NombreTratamiento: t.NombreTratamiento,
			Cantidad:          linea.Cantidad,
			PrecioUnitario:    t.PrecioBase,
			PrecioTotal:       t.PrecioBase * float64(linea.Cantidad),
		})
	}

	emision := s.now()
	p := &models.Presupuesto{
		IDPaciente:        idPaciente,
		FechaEmision:      emision,
		FechaVigencia:     emision.AddDate(0, 1, 0),
		EstadoPresupuesto: "Pendiente",
	}

	if err := s.Repo.CrearConDetalles(ctx, p, detalles); err != nil {
		return nil, err
	}

	s.notificarAtencion(ctx, p, detalles)

	return &models.CrearPresupuestoResponse{
		IDPresupuesto: p.IDPresupuesto,
		IDPaciente:    p.IDPaciente,
		FechaEmision:  p.FechaEmision,
		FechaVigencia: p.FechaVigencia,
		Total:         p.Total,
		Detalles:      detalles,
	}, nil
}

// resolverPaciente returns the patient id for the request. When the id
// does not resolve but the request carries a name, the patient is
// created on the fly: first token becomes nombre, the rest apellido.
func (s *PresupuestoService) resolverPaciente(ctx context.Context, req *models.CrearPresupuestoRequest) (int, error) {
	if req.IDPaciente > 0 {
		_, err := s.Pacientes.GetByID(ctx, req.IDPaciente)
		if err == nil {
			return req.IDPaciente, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return 0, err
		}
	}

	nombre := strings.TrimSpace(req.NombrePaciente)
	if nombre == "" {
		return 0, models.NewValidationError("paciente %d no existe", req.IDPaciente)
	}

	partes := strings.Fields(nombre)
	p := &models.Paciente{Nombre: partes[0]}
	if len(partes) > 1 {
		p.Apellido = strings.Join(partes[1:], " ")
	}

	if err := s.Pacientes.Create(ctx, p); err != nil {
		return 0, err
	}
	log.Printf("[Caja] Paciente %q creado automáticamente con id %d", nombre, p.IDPaciente)
	return p.IDPaciente, nil
}

func (s *PresupuestoService) notificarAtencion(ctx context.Context, p *models.Presupuesto, detalles []models.DetallePresupuesto) {
	if s.Notifier == nil {
		return
	}

	resumen := atencion.ResumenPresupuesto{
		IDPresupuesto: p.IDPresupuesto,
		IDPaciente:    p.IDPaciente,
		FechaEmision:  p.FechaEmision,
		FechaVigencia: p.FechaVigencia,
		Total:         p.Total,
		Detalles:      detalles,
	}
	if err := s.Notifier.EnviarPresupuesto(ctx, resumen); err != nil {
		log.Printf("[ATNC] No se pudo notificar el presupuesto %d: %v", p.IDPresupuesto, err)
	}
}

func (s *PresupuestoService) ListPresupuestos(ctx context.Context) ([]*models.Presupuesto, error) {
	return s.Repo.List(ctx)
}

// GetPresupuestoDetalle returns the quote with its line items plus the
// flat presupuesto_matriz projection some consumers still read.
func (s *PresupuestoService) GetPresupuestoDetalle(ctx context.Context, id int) (*models.PresupuestoDetalle, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detalles, err := s.Repo.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}

	matriz := make([]models.FilaMatriz, 0, len(detalles))
	for _, d := range detalles {
		matriz = append(matriz, models.FilaMatriz{
			IDPresup:    p.IDPresupuesto,
			IDPaciente:  p.IDPaciente,
			CveTrat:     d.IDTratamiento,
			Cant:        d.Cantidad,
			PrecioUnit:  d.PrecioUnitario,
			PrecioTotal: d.PrecioTotal,
			Fecha:       p.FechaEmision,
		})
	}

	return &models.PresupuestoDetalle{
		IDPresupuesto:     p.IDPresupuesto,
		IDPaciente:        p.IDPaciente,
		FechaEmision:      p.FechaEmision,
		FechaVigencia:     p.FechaVigencia,
		Total:             p.Total,
		EstadoPresupuesto: p.EstadoPresupuesto,
		Detalles:          detalles,
		PresupuestoMatriz: matriz,
	}, nil
}
