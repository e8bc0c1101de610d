package services

import (
	"context"
	"encoding/json"
	"testing"

	"clinica-caja/internal/atencion"
	"clinica-caja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogoStore struct {
	tratamientos []*models.Tratamiento
}

func (f *fakeCatalogoStore) List(ctx context.Context) ([]*models.Tratamiento, error) {
	return f.tratamientos, nil
}

func (f *fakeCatalogoStore) Create(ctx context.Context, t *models.Tratamiento) error {
	t.IDTratamiento = len(f.tratamientos) + 1
	f.tratamientos = append(f.tratamientos, t)
	return nil
}

func (f *fakeCatalogoStore) Upsert(ctx context.Context, t *models.Tratamiento) (bool, error) {
	for i, existing := range f.tratamientos {
		if existing.IDTratamiento == t.IDTratamiento {
			f.tratamientos[i] = t
			return false, nil
		}
	}
	f.tratamientos = append(f.tratamientos, t)
	return true, nil
}

type fakeCatalogoSender struct {
	payload atencion.CatalogoPayload
	resp    json.RawMessage
	err     error
}

func (f *fakeCatalogoSender) EnviarCatalogo(ctx context.Context, payload atencion.CatalogoPayload) (json.RawMessage, error) {
	f.payload = payload
	return f.resp, f.err
}

func TestCreateTratamientoValidaciones(t *testing.T) {
	svc := NewTratamientoService(&fakeCatalogoStore{}, nil)

	_, err := svc.CreateTratamiento(context.Background(), &models.CrearTratamientoRequest{NombreTratamiento: "  "})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.CreateTratamiento(context.Background(), &models.CrearTratamientoRequest{
		NombreTratamiento: "Limpieza dental",
		PrecioBase:        -1,
	})
	require.ErrorAs(t, err, &vErr)
}

func TestSyncTratamientosUpsert(t *testing.T) {
	store := &fakeCatalogoStore{tratamientos: []*models.Tratamiento{
		{IDTratamiento: 10, NombreTratamiento: "Limpieza dental", PrecioBase: 500},
	}}
	svc := NewTratamientoService(store, nil)

	result, err := svc.SyncDesdeSIGCD(context.Background(), &models.SyncTratamientosRequest{
		Tratamientos: []models.TratamientoSIGCD{
			{IDTratamiento: 10, Nombre: "Limpieza dental", PrecioBase: 600}, // update
			{IDTratamiento: 12, Nombre: "Extracción", PrecioBase: 900},      // insert
			{IDTratamiento: 13, Nombre: "   "},                              // sin nombre, omitido
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRecibidos)
	assert.Equal(t, 1, result.Insertados)
	assert.Equal(t, 1, result.Actualizados)
	assert.Equal(t, 600.0, store.tratamientos[0].PrecioBase)
}

func TestSyncTratamientosVacio(t *testing.T) {
	svc := NewTratamientoService(&fakeCatalogoStore{}, nil)

	_, err := svc.SyncDesdeSIGCD(context.Background(), &models.SyncTratamientosRequest{})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestEnviarCatalogoAtencion(t *testing.T) {
	store := &fakeCatalogoStore{tratamientos: []*models.Tratamiento{
		{IDTratamiento: 10, NombreTratamiento: "Limpieza dental", PrecioBase: 600},
		{IDTratamiento: 11, NombreTratamiento: "Radiografía", PrecioBase: 450},
	}}
	sender := &fakeCatalogoSender{resp: json.RawMessage(`{"recibidos": 2}`)}
	svc := NewTratamientoService(store, sender)

	resp, err := svc.EnviarCatalogoAtencion(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"recibidos": 2}`, string(resp))
	assert.Equal(t, "caja", sender.payload.Origen)
	require.Len(t, sender.payload.Tratamientos, 2)
	assert.Equal(t, 10, sender.payload.Tratamientos[0].CveTrat)
}

func TestEnviarCatalogoAtencionCaido(t *testing.T) {
	sender := &fakeCatalogoSender{err: assert.AnError}
	svc := NewTratamientoService(&fakeCatalogoStore{}, sender)

	_, err := svc.EnviarCatalogoAtencion(context.Background())

	var uErr *models.UpstreamError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, "Atencion", uErr.Service)
}
