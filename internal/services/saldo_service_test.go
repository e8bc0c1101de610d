package services

import (
	"context"
	"testing"

	"clinica-caja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaldoStore struct {
	tratamientos float64
	pagado       float64
	pendientes   []models.TratamientoPendiente
}

func (f *fakeSaldoStore) TotalTratamientos(ctx context.Context, idPaciente int) (float64, error) {
	return f.tratamientos, nil
}

func (f *fakeSaldoStore) TotalPagado(ctx context.Context, idPaciente int) (float64, error) {
	return f.pagado, nil
}

func (f *fakeSaldoStore) TratamientosPendientes(ctx context.Context, idPaciente int) ([]models.TratamientoPendiente, error) {
	return f.pendientes, nil
}

func TestGetSaldo(t *testing.T) {
	svc := NewSaldoService(&fakeSaldoStore{
		tratamientos: 1650,
		pagado:       600,
		pendientes: []models.TratamientoPendiente{
			{IDPresupuesto: 1, NombreTratamiento: "Limpieza dental", Cantidad: 2, PrecioTotal: 1200},
		},
	})

	saldo, err := svc.GetSaldo(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1650.0, saldo.TotalTratamientos)
	assert.Equal(t, 600.0, saldo.TotalPagado)
	assert.Equal(t, 1050.0, saldo.SaldoPendiente)
	assert.Len(t, saldo.TratamientosPendientes, 1)
}

func TestGetSaldoPacienteDesconocido(t *testing.T) {
	// No quotes and no payments reports zeros, never an error
	svc := NewSaldoService(&fakeSaldoStore{})

	saldo, err := svc.GetSaldo(context.Background(), 999)
	require.NoError(t, err)

	assert.Zero(t, saldo.TotalTratamientos)
	assert.Zero(t, saldo.TotalPagado)
	assert.Zero(t, saldo.SaldoPendiente)
	assert.NotNil(t, saldo.TratamientosPendientes)
	assert.Empty(t, saldo.TratamientosPendientes)
}

func TestGetSaldoSobrepago(t *testing.T) {
	svc := NewSaldoService(&fakeSaldoStore{tratamientos: 500, pagado: 800})

	saldo, err := svc.GetSaldo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, -300.0, saldo.SaldoPendiente)
}
