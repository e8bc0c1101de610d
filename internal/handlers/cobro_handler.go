package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"clinica-caja/internal/models"
	"clinica-caja/internal/services"
	"clinica-caja/pkg/utils"

	"github.com/gorilla/mux"
)

type CobroHandler struct {
	Service      *services.CobroService
	Comprobantes *services.ComprobanteService
}

func NewCobroHandler(service *services.CobroService, comprobantes *services.ComprobanteService) *CobroHandler {
	return &CobroHandler{Service: service, Comprobantes: comprobantes}
}

func (h *CobroHandler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req models.CrearCobroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	resp, err := h.Service.RegistrarCobro(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// CitasPendientes relays the SIGCD pending-appointments listing as-is
func (h *CobroHandler) CitasPendientes(w http.ResponseWriter, r *http.Request) {
	body, err := h.Service.CitasPendientes(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *CobroHandler) ListPorPaciente(w http.ResponseWriter, r *http.Request) {
	idPaciente, err := strconv.Atoi(r.URL.Query().Get("pacienteId"))
	if err != nil || idPaciente <= 0 {
		utils.Error(w, http.StatusBadRequest, "Parámetro pacienteId inválido")
		return
	}

	pagos, err := h.Service.ListCobrosPorPaciente(r.Context(), idPaciente)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if pagos == nil {
		pagos = []*models.Pago{}
	}
	utils.JSON(w, http.StatusOK, pagos)
}

func (h *CobroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de cobro inválido")
		return
	}

	pago, err := h.Service.GetCobro(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, pago)
}

// Comprobante streams the printable PDF receipt for a payment
func (h *CobroHandler) Comprobante(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de cobro inválido")
		return
	}

	data, err := h.Service.GetComprobanteData(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	pdf, err := h.Comprobantes.GenerarComprobantePago(data)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=comprobante_%d.pdf", id))
	w.Write(pdf)
}
