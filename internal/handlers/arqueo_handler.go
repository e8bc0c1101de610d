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

type ArqueoHandler struct {
	Service      *services.ArqueoService
	Comprobantes *services.ComprobanteService
}

func NewArqueoHandler(service *services.ArqueoService, comprobantes *services.ComprobanteService) *ArqueoHandler {
	return &ArqueoHandler{Service: service, Comprobantes: comprobantes}
}

// Generar computes the reconciliation preview. It writes nothing; the
// cashier reviews the figures before saving.
func (h *ArqueoHandler) Generar(w http.ResponseWriter, r *http.Request) {
	var req models.GenerarArqueoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	snapshot, err := h.Service.GenerarArqueo(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, snapshot)
}

func (h *ArqueoHandler) Guardar(w http.ResponseWriter, r *http.Request) {
	var req models.GuardarArqueoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	resp, err := h.Service.GuardarArqueo(r.Context(), &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *ArqueoHandler) List(w http.ResponseWriter, r *http.Request) {
	arqueos, err := h.Service.ListArqueos(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if arqueos == nil {
		arqueos = []*models.Arqueo{}
	}
	utils.JSON(w, http.StatusOK, arqueos)
}

func (h *ArqueoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de arqueo inválido")
		return
	}

	arqueo, err := h.Service.GetArqueo(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, arqueo)
}

// PDF streams the printable reconciliation sheet
func (h *ArqueoHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de arqueo inválido")
		return
	}

	arqueo, err := h.Service.GetArqueo(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	pdf, err := h.Comprobantes.GenerarArqueoPDF(arqueo)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=arqueo_%d.pdf", id))
	w.Write(pdf)
}
