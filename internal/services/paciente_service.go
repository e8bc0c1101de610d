package services

import (
	"context"
	"log"
	"strings"

	"clinica-caja/internal/models"
	"clinica-caja/internal/sigcd"
)

// PacienteRegistry is the slice of the patient repository the service uses
type PacienteRegistry interface {
	List(ctx context.Context) ([]*models.Paciente, error)
	GetByID(ctx context.Context, id int) (*models.Paciente, error)
	Create(ctx context.Context, p *models.Paciente) error
	Update(ctx context.Context, id int, p *models.CrearPacienteRequest) error
	Delete(ctx context.Context, id int) error
	Upsert(ctx context.Context, p *models.Paciente) (bool, error)
}

// PacientesFetcher pulls the patient listing from SIGCD
type PacientesFetcher interface {
	ObtenerPacientes(ctx context.Context, page, pageSize int) (*sigcd.PacientesResponse, error)
}

type PacienteService struct {
	Repo  PacienteRegistry
	SIGCD PacientesFetcher
}

func NewPacienteService(repo PacienteRegistry, sigcdClient PacientesFetcher) *PacienteService {
	return &PacienteService{Repo: repo, SIGCD: sigcdClient}
}

func (s *PacienteService) ListPacientes(ctx context.Context) ([]*models.Paciente, error) {
	return s.Repo.List(ctx)
}

func (s *PacienteService) GetPaciente(ctx context.Context, id int) (*models.Paciente, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PacienteService) CreatePaciente(ctx context.Context, req *models.CrearPacienteRequest) (*models.Paciente, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, models.NewValidationError("nombre es obligatorio")
	}
	if strings.TrimSpace(req.Apellido) == "" {
		return nil, models.NewValidationError("apellido es obligatorio")
	}

	p := &models.Paciente{
		Nombre:    strings.TrimSpace(req.Nombre),
		Apellido:  strings.TrimSpace(req.Apellido),
		FechaNac:  req.FechaNac,
		Direccion: req.Direccion,
		Correo:    req.Correo,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PacienteService) UpdatePaciente(ctx context.Context, id int, req *models.CrearPacienteRequest) error {
	if strings.TrimSpace(req.Nombre) == "" {
		return models.NewValidationError("nombre es obligatorio")
	}
	return s.Repo.Update(ctx, id, req)
}

func (s *PacienteService) DeletePaciente(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// SyncDesdeSIGCD pulls the full patient listing from SIGCD page by page
// and upserts each row locally, keyed by the SIGCD patient id.
func (s *PacienteService) SyncDesdeSIGCD(ctx context.Context) (*models.SyncPacientesResult, error) {
	const pageSize = 200

	result := &models.SyncPacientesResult{Mensaje: "Sincronización completada"}

	for page := 1; ; page++ {
		resp, err := s.SIGCD.ObtenerPacientes(ctx, page, pageSize)
		if err != nil {
			return nil, &models.UpstreamError{Service: "SIGCD", Err: err}
		}

		for _, remoto := range resp.Pacientes {
			result.TotalRecibidos++

			p := &models.Paciente{
				IDPaciente: remoto.IDPaciente,
				Nombre:     remoto.Nombre,
				Apellido:   remoto.Apellidos,
				Correo:     remoto.Email,
			}
			if remoto.FechaNacimiento != "" {
				fn := remoto.FechaNacimiento
				p.FechaNac = &fn
			}

			inserted, err := s.Repo.Upsert(ctx, p)
			if err != nil {
				log.Printf("[SIGCD] Error al sincronizar paciente %d: %v", remoto.IDPaciente, err)
				continue
			}
			if inserted {
				result.Insertados++
			} else {
				result.Actualizados++
			}
		}

		if len(resp.Pacientes) < pageSize {
			break
		}
	}

	log.Printf("[SIGCD] Sync pacientes: %d recibidos, %d insertados, %d actualizados",
		result.TotalRecibidos, result.Insertados, result.Actualizados)

	return result, nil
}
