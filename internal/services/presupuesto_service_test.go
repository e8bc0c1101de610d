package services

import (
	"context"
	"testing"
	"time"

	"clinica-caja/internal/atencion"
	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresupuestoStore struct {
	creados  []*models.Presupuesto
	detalles [][]models.DetallePresupuesto
}

func (f *fakePresupuestoStore) CrearConDetalles(ctx context.Context, p *models.Presupuesto, detalles []models.DetallePresupuesto) error {
	p.IDPresupuesto = len(f.creados) + 1
	total := 0.0
	for _, d := range detalles {
		total += d.PrecioTotal
	}
	p.Total = total
	f.creados = append(f.creados, p)
	f.detalles = append(f.detalles, detalles)
	return nil
}

func (f *fakePresupuestoStore) List(ctx context.Context) ([]*models.Presupuesto, error) {
	return f.creados, nil
}

func (f *fakePresupuestoStore) GetByID(ctx context.Context, id int) (*models.Presupuesto, error) {
	for _, p := range f.creados {
		if p.IDPresupuesto == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakePresupuestoStore) GetDetalles(ctx context.Context, idPresupuesto int) ([]models.DetallePresupuesto, error) {
	if idPresupuesto >= 1 && idPresupuesto <= len(f.detalles) {
		return f.detalles[idPresupuesto-1], nil
	}
	return nil, nil
}

type fakePacienteStore struct {
	pacientes map[int]*models.Paciente
	nextID    int
}

func newFakePacienteStore(pacientes ...*models.Paciente) *fakePacienteStore {
	f := &fakePacienteStore{pacientes: map[int]*models.Paciente{}, nextID: 100}
	for _, p := range pacientes {
		f.pacientes[p.IDPaciente] = p
	}
	return f
}

func (f *fakePacienteStore) GetByID(ctx context.Context, id int) (*models.Paciente, error) {
	if p, ok := f.pacientes[id]; ok {
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakePacienteStore) Create(ctx context.Context, p *models.Paciente) error {
	f.nextID++
	p.IDPaciente = f.nextID
	f.pacientes[p.IDPaciente] = p
	return nil
}

type fakeTratamientoStore struct {
	tratamientos map[int]*models.Tratamiento
}

func (f *fakeTratamientoStore) GetByID(ctx context.Context, id int) (*models.Tratamiento, error) {
	if t, ok := f.tratamientos[id]; ok {
		return t, nil
	}
	return nil, models.ErrNotFound
}

type fakeNotifier struct {
	enviados []atencion.ResumenPresupuesto
	err      error
}

func (f *fakeNotifier) EnviarPresupuesto(ctx context.Context, resumen atencion.ResumenPresupuesto) error {
	f.enviados = append(f.enviados, resumen)
	return f.err
}

func presupuestoFixture() (*PresupuestoService, *fakePresupuestoStore, *fakePacienteStore, *fakeNotifier) {
	store := &fakePresupuestoStore{}
	pacientes := newFakePacienteStore(&models.Paciente{IDPaciente: 1, Nombre: "Laura", Apellido: "Mendez"})
	tratamientos := &fakeTratamientoStore{tratamientos: map[int]*models.Tratamiento{
		10: {IDTratamiento: 10, NombreTratamiento: "Limpieza dental", PrecioBase: 600},
		11: {IDTratamiento: 11, NombreTratamiento: "Radiografía", PrecioBase: 450},
	}}
	notifier := &fakeNotifier{}

	svc := NewPresupuestoService(store, pacientes, tratamientos, notifier)
	svc.now = func() time.Time {
		t, _ := timeutil.ParseInClinic(timeutil.DateTimeLayout, "2025-06-14 10:00:00")
		return t
	}
	return svc, store, pacientes, notifier
}

func TestCrearPresupuestoCopiaPrecios(t *testing.T) {
	svc, store, _, _ := presupuestoFixture()

	resp, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente: 1,
		Tratamientos: []models.TratamientoSolicitado{
			{IDTratamiento: 10, Cantidad: 2},
			{IDTratamiento: 11, Cantidad: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1650.0, resp.Total)
	require.Len(t, resp.Detalles, 2)
	assert.Equal(t, 600.0, resp.Detalles[0].PrecioUnitario)
	assert.Equal(t, 1200.0, resp.Detalles[0].PrecioTotal)

	require.Len(t, store.creados, 1)
	assert.Equal(t, "Pendiente", store.creados[0].EstadoPresupuesto)
}

func TestCrearPresupuestoVigenciaUnMes(t *testing.T) {
	svc, store, _, _ := presupuestoFixture()

	_, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente:   1,
		Tratamientos: []models.TratamientoSolicitado{{IDTratamiento: 10, Cantidad: 1}},
	})
	require.NoError(t, err)

	p := store.creados[0]
	assert.Equal(t, p.FechaEmision.AddDate(0, 1, 0), p.FechaVigencia)
}

func TestCrearPresupuestoOmiteLineasInvalidas(t *testing.T) {
	svc, _, _, _ := presupuestoFixture()

	resp, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente: 1,
		Tratamientos: []models.TratamientoSolicitado{
			{IDTratamiento: 10, Cantidad: 0},  // cantidad no positiva
			{IDTratamiento: 999, Cantidad: 1}, // tratamiento inexistente
			{IDTratamiento: 11, Cantidad: -2},
		},
	})
	require.NoError(t, err)

	// All lines skipped still makes a quote, just an empty one
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Detalles)
}

func TestCrearPresupuestoSinTratamientos(t *testing.T) {
	svc, _, _, _ := presupuestoFixture()

	_, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{IDPaciente: 1})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCrearPresupuestoPacienteDesconocidoSinNombre(t *testing.T) {
	svc, _, _, _ := presupuestoFixture()

	_, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente:   42,
		Tratamientos: []models.TratamientoSolicitado{{IDTratamiento: 10, Cantidad: 1}},
	})

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCrearPresupuestoAutoCreaPaciente(t *testing.T) {
	svc, store, pacientes, _ := presupuestoFixture()

	resp, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente:     42,
		NombrePaciente: "Juan Carlos Perez Lopez",
		Tratamientos:   []models.TratamientoSolicitado{{IDTratamiento: 10, Cantidad: 1}},
	})
	require.NoError(t, err)

	creado, err := pacientes.GetByID(context.Background(), resp.IDPaciente)
	require.NoError(t, err)
	assert.Equal(t, "Juan", creado.Nombre)
	assert.Equal(t, "Carlos Perez Lopez", creado.Apellido)
	assert.Equal(t, creado.IDPaciente, store.creados[0].IDPaciente)
}

func TestCrearPresupuestoNotificaAtencion(t *testing.T) {
	svc, _, _, notifier := presupuestoFixture()

	resp, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente:   1,
		Tratamientos: []models.TratamientoSolicitado{{IDTratamiento: 10, Cantidad: 1}},
	})
	require.NoError(t, err)

	require.Len(t, notifier.enviados, 1)
	assert.Equal(t, resp.IDPresupuesto, notifier.enviados[0].IDPresupuesto)
	assert.Equal(t, resp.Total, notifier.enviados[0].Total)
}

func TestCrearPresupuestoNotificacionFallidaNoRompe(t *testing.T) {
	svc, store, _, notifier := presupuestoFixture()
	notifier.err = assert.AnError

	_, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente:   1,
		Tratamientos: []models.TratamientoSolicitado{{IDTratamiento: 10, Cantidad: 1}},
	})

	require.NoError(t, err)
	assert.Len(t, store.creados, 1)
}

func TestGetPresupuestoDetalleIncluyeMatriz(t *testing.T) {
	svc, _, _, _ := presupuestoFixture()

	resp, err := svc.CrearPresupuesto(context.Background(), &models.CrearPresupuestoRequest{
		IDPaciente: 1,
		Tratamientos: []models.TratamientoSolicitado{
			{IDTratamiento: 10, Cantidad: 2},
		},
	})
	require.NoError(t, err)

	detalle, err := svc.GetPresupuestoDetalle(context.Background(), resp.IDPresupuesto)
	require.NoError(t, err)

	require.Len(t, detalle.PresupuestoMatriz, 1)
	fila := detalle.PresupuestoMatriz[0]
	assert.Equal(t, resp.IDPresupuesto, fila.IDPresup)
	assert.Equal(t, 10, fila.CveTrat)
	assert.Equal(t, 2, fila.Cant)
	assert.Equal(t, 1200.0, fila.PrecioTotal)
}

func TestGetPresupuestoDetalleNoEncontrado(t *testing.T) {
	svc, _, _, _ := presupuestoFixture()

	_, err := svc.GetPresupuestoDetalle(context.Background(), 99)
	require.ErrorIs(t, err, models.ErrNotFound)
}
