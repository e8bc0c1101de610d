package handlers

import (
	"encoding/json"
	"net/http"

	"clinica-caja/internal/health"
	"clinica-caja/internal/timeutil"
)

const serviceName = "clinica-caja-api"

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth - for liveness probes
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
}

// APIHealth is the shape the front desk UI polls
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":        true,
		"service":   serviceName,
		"timestamp": timeutil.Now(),
	})
}

// ReadinessHealth - for readiness probes, checks the database
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	reporte := h.checker.Revisar(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if reporte.Estado == health.EstadoCaido {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(reporte)
}

// DetailedHealth - for the monitoring dashboard
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	reporte := h.checker.Revisar(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(reporte)
}
