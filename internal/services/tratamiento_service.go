package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"clinica-caja/internal/atencion"
	"clinica-caja/internal/cache"
	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"
)

// CatalogoStore is the slice of the treatment repository the service uses
type CatalogoStore interface {
	List(ctx context.Context) ([]*models.Tratamiento, error)
	Create(ctx context.Context, t *models.Tratamiento) error
	Upsert(ctx context.Context, t *models.Tratamiento) (bool, error)
}

// CatalogoSender pushes the treatment catalog to Atención
type CatalogoSender interface {
	EnviarCatalogo(ctx context.Context, payload atencion.CatalogoPayload) (json.RawMessage, error)
}

type TratamientoService struct {
	Repo     CatalogoStore
	Atencion CatalogoSender
}

func NewTratamientoService(repo CatalogoStore, atencionClient CatalogoSender) *TratamientoService {
	return &TratamientoService{Repo: repo, Atencion: atencionClient}
}

// ListTratamientos serves the catalog from Redis when the cache is warm
func (s *TratamientoService) ListTratamientos(ctx context.Context) ([]*models.Tratamiento, error) {
	if cached, ok := cache.GetCatalogoTratamientos(ctx); ok {
		return cached, nil
	}

	tratamientos, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetCatalogoTratamientos(ctx, tratamientos)
	return tratamientos, nil
}

func (s *TratamientoService) CreateTratamiento(ctx context.Context, req *models.CrearTratamientoRequest) (*models.Tratamiento, error) {
	if strings.TrimSpace(req.NombreTratamiento) == "" {
		return nil, models.NewValidationError("nombreTratamiento es obligatorio")
	}
	if req.PrecioBase < 0 {
		return nil, models.NewValidationError("precioBase no puede ser negativo")
	}

	t := &models.Tratamiento{
		NombreTratamiento: strings.TrimSpace(req.NombreTratamiento),
		Descripcion:       req.Descripcion,
		PrecioBase:        req.PrecioBase,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}

	cache.InvalidateCatalogoTratamientos(ctx)
	return t, nil
}

// SyncDesdeSIGCD upserts the treatment batch SIGCD pushes to us. Rows
// without a name are counted as received but skipped.
func (s *TratamientoService) SyncDesdeSIGCD(ctx context.Context, req *models.SyncTratamientosRequest) (*models.SyncTratamientosResult, error) {
	if len(req.Tratamientos) == 0 {
		return nil, models.NewValidationError("tratamientos es obligatorio y no puede estar vacío")
	}

	result := &models.SyncTratamientosResult{Mensaje: "Sincronización completada"}

	for _, remoto := range req.Tratamientos {
		result.TotalRecibidos++

		if strings.TrimSpace(remoto.Nombre) == "" {
			log.Printf("[SIGCD] Tratamiento %d sin nombre, omitido", remoto.IDTratamiento)
			continue
		}

		t := &models.Tratamiento{
			IDTratamiento:     remoto.IDTratamiento,
			NombreTratamiento: remoto.Nombre,
			Descripcion:       remoto.Descripcion,
			PrecioBase:        remoto.PrecioBase,
		}

		inserted, err := s.Repo.Upsert(ctx, t)
		if err != nil {
			log.Printf("[SIGCD] Error al sincronizar tratamiento %d: %v", remoto.IDTratamiento, err)
			continue
		}
		if inserted {
			result.Insertados++
		} else {
			result.Actualizados++
		}
	}

	cache.InvalidateCatalogoTratamientos(ctx)

	log.Printf("[SIGCD] Sync tratamientos: %d recibidos, %d insertados, %d actualizados",
		result.TotalRecibidos, result.Insertados, result.Actualizados)

	return result, nil
}

// EnviarCatalogoAtencion pushes the full local catalog to Atención.
// Unlike the quote forward this is read-through: an upstream failure
// surfaces to the caller as a 502.
func (s *TratamientoService) EnviarCatalogoAtencion(ctx context.Context) (json.RawMessage, error) {
	tratamientos, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	payload := atencion.CatalogoPayload{
		Origen:       "caja",
		FechaEnvio:   timeutil.Now(),
		Tratamientos: make([]atencion.TratamientoCatalogo, 0, len(tratamientos)),
	}
	for _, t := range tratamientos {
		payload.Tratamientos = append(payload.Tratamientos, atencion.TratamientoCatalogo{
			CveTrat:     t.IDTratamiento,
			Nombre:      t.NombreTratamiento,
			Descripcion: t.Descripcion,
			PrecioBase:  t.PrecioBase,
			Activo:      1,
		})
	}

	resp, err := s.Atencion.EnviarCatalogo(ctx, payload)
	if err != nil {
		return nil, &models.UpstreamError{Service: "Atencion", Err: err}
	}

	log.Printf("[ATNC] Catálogo enviado: %d tratamientos", len(payload.Tratamientos))
	return resp, nil
}
