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

type PacienteHandler struct {
	Service *services.PacienteService
}

func NewPacienteHandler(service *services.PacienteService) *PacienteHandler {
	return &PacienteHandler{Service: service}
}

func (h *PacienteHandler) List(w http.ResponseWriter, r *http.Request) {
	pacientes, err := h.Service.ListPacientes(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if pacientes == nil {
		pacientes = []*models.Paciente{}
	}
	utils.JSON(w, http.StatusOK, pacientes)
}

func (h *PacienteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de paciente inválido")
		return
	}

	paciente, err := h.Service.GetPaciente(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, paciente)
}

func (h *PacienteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CrearPacienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	paciente, err := h.Service.CreatePaciente(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, paciente)
}

func (h *PacienteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de paciente inválido")
		return
	}

	var req models.CrearPacienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if err := h.Service.UpdatePaciente(r.Context(), id, &req); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"mensaje": "Paciente actualizado correctamente"})
}

func (h *PacienteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de paciente inválido")
		return
	}

	if err := h.Service.DeletePaciente(r.Context(), id); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"mensaje": "Paciente eliminado correctamente"})
}

func (h *PacienteHandler) SyncDesdeSIGCD(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.SyncDesdeSIGCD(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
