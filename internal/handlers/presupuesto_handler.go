package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinica-caja/internal/models"
	"clinica-caja/internal/services"
	"clinica-caja/pkg/utils"

	"github.com/gorilla/mux"
)

type PresupuestoHandler struct {
	Service *services.PresupuestoService
}

func NewPresupuestoHandler(service *services.PresupuestoService) *PresupuestoHandler {
	return &PresupuestoHandler{Service: service}
}

func (h *PresupuestoHandler) Crear(w http.ResponseWriter, r *http.Request) {
	var req models.CrearPresupuestoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	resp, err := h.Service.CrearPresupuesto(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *PresupuestoHandler) List(w http.ResponseWriter, r *http.Request) {
	presupuestos, err := h.Service.ListPresupuestos(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if presupuestos == nil {
		presupuestos = []*models.Presupuesto{}
	}
	utils.JSON(w, http.StatusOK, presupuestos)
}

func (h *PresupuestoHandler) GetDetalle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de presupuesto inválido")
		return
	}

	detalle, err := h.Service.GetPresupuestoDetalle(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detalle)
}
