package handlers

import (
	"net/http"
	"strconv"

	"clinica-caja/internal/services"
	"clinica-caja/pkg/utils"

	"github.com/gorilla/mux"
)

type SaldoHandler struct {
	Service *services.SaldoService
}

func NewSaldoHandler(service *services.SaldoService) *SaldoHandler {
	return &SaldoHandler{Service: service}
}

func (h *SaldoHandler) Get(w http.ResponseWriter, r *http.Request) {
	idPaciente, err := strconv.Atoi(mux.Vars(r)["idPaciente"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ID de paciente inválido")
		return
	}

	saldo, err := h.Service.GetSaldo(r.Context(), idPaciente)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, saldo)
}
