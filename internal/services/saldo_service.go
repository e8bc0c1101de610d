package services

import (
	"context"

	"clinica-caja/internal/models"
)

// SaldoStore is the slice of the balance repository the service uses
type SaldoStore interface {
	TotalTratamientos(ctx context.Context, idPaciente int) (float64, error)
	TotalPagado(ctx context.Context, idPaciente int) (float64, error)
	TratamientosPendientes(ctx context.Context, idPaciente int) ([]models.TratamientoPendiente, error)
}

type SaldoService struct {
	Repo SaldoStore
}

func NewSaldoService(repo SaldoStore) *SaldoService {
	return &SaldoService{Repo: repo}
}

// GetSaldo computes the patient's outstanding balance. An unknown
// patient yields zeros across the board, never an error.
func (s *SaldoService) GetSaldo(ctx context.Context, idPaciente int) (*models.Saldo, error) {
	totalTratamientos, err := s.Repo.TotalTratamientos(ctx, idPaciente)
	if err != nil {
		return nil, err
	}

	totalPagado, err := s.Repo.TotalPagado(ctx, idPaciente)
	if err != nil {
		return nil, err
	}

	pendientes, err := s.Repo.TratamientosPendientes(ctx, idPaciente)
	if err != nil {
		return nil, err
	}
	if pendientes == nil {
		pendientes = []models.TratamientoPendiente{}
	}

	return &models.Saldo{
		IDPaciente:             idPaciente,
		TotalTratamientos:      totalTratamientos,
		TotalPagado:            totalPagado,
		SaldoPendiente:         totalTratamientos - totalPagado,
		TratamientosPendientes: pendientes,
	}, nil
}
