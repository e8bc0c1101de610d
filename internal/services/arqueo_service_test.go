package services

import (
	"context"
	"testing"
	"time"

	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArqueoStore struct {
	ultimo   *models.Arqueo
	resumen  []models.PagoResumen
	guardado []*models.Arqueo

	gotDesde string
	gotFecha string
}

func (f *fakeArqueoStore) UltimoDelDia(ctx context.Context, fecha string) (*models.Arqueo, error) {
	return f.ultimo, nil
}

func (f *fakeArqueoStore) ResumenPagos(ctx context.Context, desde string, fecha string) ([]models.PagoResumen, error) {
	f.gotDesde = desde
	f.gotFecha = fecha
	return f.resumen, nil
}

func (f *fakeArqueoStore) Insertar(ctx context.Context, a *models.Arqueo) error {
	a.IDArqueo = len(f.guardado) + 1
	a.CreatedAt = time.Now()
	f.guardado = append(f.guardado, a)
	return nil
}

func (f *fakeArqueoStore) Listar(ctx context.Context) ([]*models.Arqueo, error) {
	return f.guardado, nil
}

func (f *fakeArqueoStore) PorID(ctx context.Context, id int) (*models.Arqueo, error) {
	for _, a := range f.guardado {
		if a.IDArqueo == id {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func fixedClock(value string) func() time.Time {
	t, err := timeutil.ParseInClinic(timeutil.DateTimeLayout, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func genReq() *models.GenerarArqueoRequest {
	return &models.GenerarArqueoRequest{UsuarioRegistro: "mrodriguez"}
}

func TestGenerarArqueoVentanaDesdeInicioDelDia(t *testing.T) {
	store := &fakeArqueoStore{}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 15:30:00")

	snapshot, err := svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-14 00:00:00", store.gotDesde)
	assert.Equal(t, "2025-06-14", store.gotFecha)
	assert.Equal(t, "2025-06-14", snapshot.Fecha)
	assert.Equal(t, "15:30:00", snapshot.HoraGeneracion)
	assert.Equal(t, "mrodriguez", snapshot.UsuarioRegistro)
}

func TestGenerarArqueoValidaResponsable(t *testing.T) {
	svc := NewArqueoService(&fakeArqueoStore{}, nil)

	_, err := svc.GenerarArqueo(context.Background(), &models.GenerarArqueoRequest{})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGenerarArqueoVentanaDesdeUltimoArqueo(t *testing.T) {
	store := &fakeArqueoStore{
		ultimo: &models.Arqueo{
			IDArqueo:       7,
			Fecha:          "2025-06-14",
			HoraGeneracion: "12:00:00",
		},
	}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 18:00:00")

	_, err := svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-14 12:00:00", store.gotDesde)
}

func TestGenerarArqueoAgrupaMetodos(t *testing.T) {
	store := &fakeArqueoStore{
		resumen: []models.PagoResumen{
			{MetodoPago: "EFECTIVO", Cantidad: 3, Total: 900},
			{MetodoPago: "tarjeta", Cantidad: 2, Total: 1200},
			{MetodoPago: "Transferencia", Cantidad: 1, Total: 500},
		},
	}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 18:00:00")

	snapshot, err := svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)

	assert.Equal(t, 900.0, snapshot.TotalEfectivo)
	assert.Equal(t, 1200.0, snapshot.TotalTarjeta)
	assert.Equal(t, 500.0, snapshot.TotalTransferencia)
	assert.Equal(t, 2600.0, snapshot.TotalGeneral)
	assert.Equal(t, 6, snapshot.CantidadPagos)
	assert.Len(t, snapshot.Desglose, 3)
}

func TestGenerarArqueoMetodoDesconocido(t *testing.T) {
	store := &fakeArqueoStore{
		resumen: []models.PagoResumen{
			{MetodoPago: "EFECTIVO", Cantidad: 1, Total: 100},
			{MetodoPago: "VALE", Cantidad: 2, Total: 300},
		},
	}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 18:00:00")

	snapshot, err := svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)

	// The unrecognized method counts and shows up in the desglose,
	// but never lands in a named total
	assert.Equal(t, 100.0, snapshot.TotalGeneral)
	assert.Equal(t, 3, snapshot.CantidadPagos)
	assert.Len(t, snapshot.Desglose, 2)
}

func TestGenerarArqueoSinPagos(t *testing.T) {
	store := &fakeArqueoStore{}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 09:00:00")

	snapshot, err := svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)

	assert.Zero(t, snapshot.TotalGeneral)
	assert.Zero(t, snapshot.CantidadPagos)
	assert.NotNil(t, snapshot.Desglose)
	assert.Empty(t, snapshot.Desglose)
}

func TestGuardarArqueoValidaResponsable(t *testing.T) {
	svc := NewArqueoService(&fakeArqueoStore{}, nil)

	_, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		Fecha:        "2025-06-14",
		TotalGeneral: 100,
	})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGuardarArqueoValidaTotal(t *testing.T) {
	store := &fakeArqueoStore{}
	svc := NewArqueoService(store, nil)

	_, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		UsuarioRegistro: "mrodriguez",
		Fecha:           "2025-06-14",
	})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.guardado)
}

func TestGuardarArqueoValidaFecha(t *testing.T) {
	svc := NewArqueoService(&fakeArqueoStore{}, nil)

	_, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		UsuarioRegistro: "mrodriguez",
		Fecha:           "14/06/2025",
	})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGuardarArqueoPersisteLoEnviado(t *testing.T) {
	store := &fakeArqueoStore{}
	svc := NewArqueoService(store, nil)

	obs := "caja cuadrada"
	resp, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		Fecha:              "2025-06-14",
		HoraGeneracion:     "18:30:00",
		TotalEfectivo:      900,
		TotalTarjeta:       1200,
		TotalTransferencia: 500,
		TotalGeneral:       2600,
		CantidadPagos:      6,
		UsuarioRegistro:    "  mrodriguez  ",
		Observaciones:      &obs,
	})
	require.NoError(t, err)
	require.Len(t, store.guardado, 1)

	saved := store.guardado[0]
	assert.Equal(t, resp.IDArqueo, saved.IDArqueo)
	// Figures are stored as sent, not recomputed
	assert.Equal(t, 2600.0, saved.TotalGeneral)
	assert.Equal(t, 6, saved.CantidadPagos)
	assert.Equal(t, "mrodriguez", saved.UsuarioRegistro)
	assert.Equal(t, "18:30:00", saved.HoraGeneracion)
}

func TestGuardarLuegoGenerarVentanaVacia(t *testing.T) {
	store := &fakeArqueoStore{}
	svc := NewArqueoService(store, nil)
	svc.now = fixedClock("2025-06-14 18:30:00")

	_, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		Fecha:           "2025-06-14",
		HoraGeneracion:  "18:30:00",
		TotalGeneral:    2600,
		UsuarioRegistro: "mrodriguez",
	})
	require.NoError(t, err)

	// The next generate opens its window at the arqueo just saved
	store.ultimo = store.guardado[0]
	svc.now = fixedClock("2025-06-14 18:31:00")

	_, err = svc.GenerarArqueo(context.Background(), genReq())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-14 18:30:00", store.gotDesde)
}

type fakeArchiver struct {
	calls int
	err   error
}

func (f *fakeArchiver) ArchivarArqueo(ctx context.Context, a *models.Arqueo) error {
	f.calls++
	return f.err
}

func TestGuardarArqueoRespaldoFallidoNoRompe(t *testing.T) {
	store := &fakeArqueoStore{}
	archiver := &fakeArchiver{err: assert.AnError}
	svc := NewArqueoService(store, archiver)

	_, err := svc.GuardarArqueo(context.Background(), &models.GuardarArqueoRequest{
		Fecha:           "2025-06-14",
		TotalGeneral:    700,
		UsuarioRegistro: "mrodriguez",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, archiver.calls)
	assert.Len(t, store.guardado, 1)
}
