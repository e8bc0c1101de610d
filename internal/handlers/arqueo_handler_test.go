package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinica-caja/internal/models"
	"clinica-caja/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArqueoStore struct {
	resumen  []models.PagoResumen
	guardado []*models.Arqueo
}

func (s *stubArqueoStore) UltimoDelDia(ctx context.Context, fecha string) (*models.Arqueo, error) {
	return nil, nil
}

func (s *stubArqueoStore) ResumenPagos(ctx context.Context, desde string, fecha string) ([]models.PagoResumen, error) {
	return s.resumen, nil
}

func (s *stubArqueoStore) Insertar(ctx context.Context, a *models.Arqueo) error {
	a.IDArqueo = len(s.guardado) + 1
	a.CreatedAt = time.Now()
	s.guardado = append(s.guardado, a)
	return nil
}

func (s *stubArqueoStore) Listar(ctx context.Context) ([]*models.Arqueo, error) {
	return s.guardado, nil
}

func (s *stubArqueoStore) PorID(ctx context.Context, id int) (*models.Arqueo, error) {
	for _, a := range s.guardado {
		if a.IDArqueo == id {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func arqueoRouter(store *stubArqueoStore) *mux.Router {
	handler := NewArqueoHandler(services.NewArqueoService(store, nil), services.NewComprobanteService())

	r := mux.NewRouter()
	api := r.PathPrefix("/api/arqueo").Subrouter()
	api.HandleFunc("/generar", handler.Generar).Methods("POST")
	api.HandleFunc("", handler.Guardar).Methods("POST")
	api.HandleFunc("", handler.List).Methods("GET")
	api.HandleFunc("/{id}", handler.Get).Methods("GET")
	api.HandleFunc("/{id}/pdf", handler.PDF).Methods("GET")
	return r
}

func TestArqueoGenerarEndpoint(t *testing.T) {
	store := &stubArqueoStore{resumen: []models.PagoResumen{
		{MetodoPago: "EFECTIVO", Cantidad: 2, Total: 700},
	}}
	router := arqueoRouter(store)

	body := `{"usuarioRegistro":"mrodriguez"}`
	req := httptest.NewRequest("POST", "/api/arqueo/generar", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot models.ArqueoSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, 700.0, snapshot.TotalEfectivo)
	assert.Equal(t, 700.0, snapshot.TotalGeneral)
	assert.Equal(t, "mrodriguez", snapshot.UsuarioRegistro)
	// Generate is a pure read
	assert.Empty(t, store.guardado)
}

func TestArqueoGenerarSinResponsable(t *testing.T) {
	router := arqueoRouter(&stubArqueoStore{})

	req := httptest.NewRequest("POST", "/api/arqueo/generar", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArqueoGuardarEndpoint(t *testing.T) {
	store := &stubArqueoStore{}
	router := arqueoRouter(store)

	body := `{"fecha":"2025-06-14","horaGeneracion":"18:30:00","totalEfectivo":700,"totalGeneral":700,"cantidadPagos":2,"usuarioRegistro":"mrodriguez"}`
	req := httptest.NewRequest("POST", "/api/arqueo", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.GuardarArqueoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.IDArqueo)
	require.Len(t, store.guardado, 1)
}

func TestArqueoGuardarSinResponsable(t *testing.T) {
	router := arqueoRouter(&stubArqueoStore{})

	body := `{"fecha":"2025-06-14","totalGeneral":700}`
	req := httptest.NewRequest("POST", "/api/arqueo", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArqueoGetNoEncontrado(t *testing.T) {
	router := arqueoRouter(&stubArqueoStore{})

	req := httptest.NewRequest("GET", "/api/arqueo/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArqueoPDFEndpoint(t *testing.T) {
	store := &stubArqueoStore{guardado: []*models.Arqueo{{
		IDArqueo:        1,
		Fecha:           "2025-06-14",
		HoraGeneracion:  "18:30:00",
		TotalEfectivo:   700,
		TotalGeneral:    700,
		CantidadPagos:   2,
		UsuarioRegistro: "mrodriguez",
	}}}
	router := arqueoRouter(store)

	req := httptest.NewRequest("GET", "/api/arqueo/1/pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "body should be a PDF document")
}
