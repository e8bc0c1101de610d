package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"clinica-caja/internal/models"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, missing row 404, failed upstream read 502, anything
// else a generic 500 that never leaks internals.
func ServiceError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		Error(w, http.StatusBadRequest, vErr.Message)
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		Error(w, http.StatusNotFound, models.ErrNotFound.Error())
		return
	}

	var uErr *models.UpstreamError
	if errors.As(err, &uErr) {
		Error(w, http.StatusBadGateway, "Servicio externo no disponible: "+uErr.Service)
		return
	}

	log.Printf("[Caja] Error interno: %v", err)
	Error(w, http.StatusInternalServerError, "Error interno del servidor")
}
