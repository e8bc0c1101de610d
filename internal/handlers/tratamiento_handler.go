package handlers

import (
	"encoding/json"
	"net/http"

	"clinica-caja/internal/models"
	"clinica-caja/internal/services"
	"clinica-caja/pkg/utils"
)

type TratamientoHandler struct {
	Service *services.TratamientoService
}

func NewTratamientoHandler(service *services.TratamientoService) *TratamientoHandler {
	return &TratamientoHandler{Service: service}
}

func (h *TratamientoHandler) List(w http.ResponseWriter, r *http.Request) {
	tratamientos, err := h.Service.ListTratamientos(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if tratamientos == nil {
		tratamientos = []*models.Tratamiento{}
	}
	utils.JSON(w, http.StatusOK, tratamientos)
}

func (h *TratamientoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CrearTratamientoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	tratamiento, err := h.Service.CreateTratamiento(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, tratamiento)
}

func (h *TratamientoHandler) SyncDesdeSIGCD(w http.ResponseWriter, r *http.Request) {
	var req models.SyncTratamientosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	result, err := h.Service.SyncDesdeSIGCD(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// EnviarCatalogoAtencion pushes the local catalog to Atención and
// relays whatever Atención answered.
func (h *TratamientoHandler) EnviarCatalogoAtencion(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.EnviarCatalogoAtencion(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	if resp == nil {
		utils.JSON(w, http.StatusOK, map[string]string{"mensaje": "Catálogo enviado correctamente"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}
