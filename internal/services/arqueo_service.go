package services

import (
	"context"
	"log"
	"strings"
	"time"

	"clinica-caja/internal/metrics"
	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"
)

// ArqueoStore is the slice of the arqueo repository the service uses
type ArqueoStore interface {
	UltimoDelDia(ctx context.Context, fecha string) (*models.Arqueo, error)
	ResumenPagos(ctx context.Context, desde string, fecha string) ([]models.PagoResumen, error)
	Insertar(ctx context.Context, a *models.Arqueo) error
	Listar(ctx context.Context) ([]*models.Arqueo, error)
	PorID(ctx context.Context, id int) (*models.Arqueo, error)
}

// ArqueoArchiver copies a saved reconciliation offsite. Failures are
// logged only; the local row is already committed.
type ArqueoArchiver interface {
	ArchivarArqueo(ctx context.Context, a *models.Arqueo) error
}

type ArqueoService struct {
	Repo     ArqueoStore
	Archiver ArqueoArchiver

	now func() time.Time
}

func NewArqueoService(repo ArqueoStore, archiver ArqueoArchiver) *ArqueoService {
	return &ArqueoService{Repo: repo, Archiver: archiver, now: timeutil.Now}
}

// GenerarArqueo computes a reconciliation preview without writing
// anything. The window opens at the last reconciliation saved today
// (so back-to-back generates after a save come out empty) or at the
// start of the clinic-local day, and closes now.
func (s *ArqueoService) GenerarArqueo(ctx context.Context, req *models.GenerarArqueoRequest) (*models.ArqueoSnapshot, error) {
	if strings.TrimSpace(req.UsuarioRegistro) == "" {
		return nil, models.NewValidationError("usuarioRegistro es obligatorio")
	}

	ahora := timeutil.ToClinic(s.now())
	fecha := ahora.Format(timeutil.DateLayout)

	desde, err := s.inicioVentana(ctx, ahora, fecha)
	if err != nil {
		return nil, err
	}

	resumen, err := s.Repo.ResumenPagos(ctx, desde.Format(timeutil.DateTimeLayout), fecha)
	if err != nil {
		return nil, err
	}

	snapshot := foldResumen(resumen)
	snapshot.Fecha = fecha
	snapshot.HoraGeneracion = ahora.Format(timeutil.TimeLayout)
	snapshot.UsuarioRegistro = strings.TrimSpace(req.UsuarioRegistro)
	snapshot.Observaciones = req.Observaciones

	return snapshot, nil
}

// inicioVentana finds where today's reconciliation window opens: right
// after the last arqueo saved today, else at the start of the day.
func (s *ArqueoService) inicioVentana(ctx context.Context, ahora time.Time, fecha string) (time.Time, error) {
	ultimo, err := s.Repo.UltimoDelDia(ctx, fecha)
	if err != nil {
		return time.Time{}, err
	}
	if ultimo == nil {
		return timeutil.StartOfDay(ahora), nil
	}

	corte, err := timeutil.ParseInClinic(timeutil.DateTimeLayout, ultimo.Fecha+" "+ultimo.HoraGeneracion)
	if err != nil {
		log.Printf("[Arqueo] Corte ilegible en arqueo %d (%s %s), usando inicio del día",
			ultimo.IDArqueo, ultimo.Fecha, ultimo.HoraGeneracion)
		return timeutil.StartOfDay(ahora), nil
	}
	return corte, nil
}

// foldResumen folds the grouped payment rows into the three named
// buckets. Matching is case-insensitive; methods outside the three
// still count toward cantidadPagos and appear in the desglose, but
// never in the named totals.
func foldResumen(resumen []models.PagoResumen) *models.ArqueoSnapshot {
	snapshot := &models.ArqueoSnapshot{Desglose: []models.PagoResumen{}}

	for _, fila := range resumen {
		snapshot.CantidadPagos += fila.Cantidad
		snapshot.Desglose = append(snapshot.Desglose, fila)

		switch strings.ToUpper(strings.TrimSpace(fila.MetodoPago)) {
		case models.MetodoEfectivo:
			snapshot.TotalEfectivo += fila.Total
		case models.MetodoTarjeta:
			snapshot.TotalTarjeta += fila.Total
		case models.MetodoTransferencia:
			snapshot.TotalTransferencia += fila.Total
		default:
			log.Printf("[Arqueo] Método de pago no reconocido: %q (%d pagos)", fila.MetodoPago, fila.Cantidad)
		}
	}

	snapshot.TotalGeneral = snapshot.TotalEfectivo + snapshot.TotalTarjeta + snapshot.TotalTransferencia
	return snapshot
}

// GuardarArqueo persists the snapshot the cashier signed off on, as
// sent. The figures are not recomputed at save time: what the cashier
// saw and approved is what goes in the book.
func (s *ArqueoService) GuardarArqueo(ctx context.Context, req *models.GuardarArqueoRequest) (*models.GuardarArqueoResponse, error) {
	if strings.TrimSpace(req.UsuarioRegistro) == "" {
		return nil, models.NewValidationError("usuarioRegistro es obligatorio")
	}
	if strings.TrimSpace(req.Fecha) == "" {
		return nil, models.NewValidationError("fecha es obligatoria")
	}
	if _, err := time.Parse(timeutil.DateLayout, req.Fecha); err != nil {
		return nil, models.NewValidationError("fecha inválida: %s", req.Fecha)
	}
	if req.TotalGeneral == 0 {
		return nil, models.NewValidationError("totalGeneral es obligatorio")
	}

	hora := strings.TrimSpace(req.HoraGeneracion)
	if hora == "" {
		hora = timeutil.ToClinic(s.now()).Format(timeutil.TimeLayout)
	}

	a := &models.Arqueo{
		Fecha:              req.Fecha,
		HoraGeneracion:     hora,
		TotalEfectivo:      req.TotalEfectivo,
		TotalTarjeta:       req.TotalTarjeta,
		TotalTransferencia: req.TotalTransferencia,
		TotalGeneral:       req.TotalGeneral,
		CantidadPagos:      req.CantidadPagos,
		UsuarioRegistro:    strings.TrimSpace(req.UsuarioRegistro),
		Observaciones:      req.Observaciones,
	}

	if err := s.Repo.Insertar(ctx, a); err != nil {
		return nil, err
	}

	metrics.ArqueosGuardados.Inc()
	log.Printf("[Arqueo] Arqueo %d guardado por %s: total %.2f (%d pagos)",
		a.IDArqueo, a.UsuarioRegistro, a.TotalGeneral, a.CantidadPagos)

	if s.Archiver != nil {
		if err := s.Archiver.ArchivarArqueo(ctx, a); err != nil {
			log.Printf("[Arqueo] Respaldo externo del arqueo %d falló: %v", a.IDArqueo, err)
		}
	}

	return &models.GuardarArqueoResponse{
		Mensaje:  "Arqueo guardado correctamente",
		IDArqueo: a.IDArqueo,
	}, nil
}

func (s *ArqueoService) ListArqueos(ctx context.Context) ([]*models.Arqueo, error) {
	return s.Repo.Listar(ctx)
}

func (s *ArqueoService) GetArqueo(ctx context.Context, id int) (*models.Arqueo, error) {
	return s.Repo.PorID(ctx, id)
}
