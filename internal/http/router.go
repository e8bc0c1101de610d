package http

import (
	"clinica-caja/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	pacienteHandler *handlers.PacienteHandler,
	tratamientoHandler *handlers.TratamientoHandler,
	presupuestoHandler *handlers.PresupuestoHandler,
	cobroHandler *handlers.CobroHandler,
	saldoHandler *handlers.SaldoHandler,
	arqueoHandler *handlers.ArqueoHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Pacientes
	pacientesAPI := r.PathPrefix("/api/pacientes").Subrouter()
	pacientesAPI.HandleFunc("", pacienteHandler.List).Methods("GET")
	pacientesAPI.HandleFunc("", pacienteHandler.Create).Methods("POST")
	pacientesAPI.HandleFunc("/sync-desde-sigcd", pacienteHandler.SyncDesdeSIGCD).Methods("POST")
	pacientesAPI.HandleFunc("/{id}", pacienteHandler.Get).Methods("GET")
	pacientesAPI.HandleFunc("/{id}", pacienteHandler.Update).Methods("PUT")
	pacientesAPI.HandleFunc("/{id}", pacienteHandler.Delete).Methods("DELETE")

	// Tratamientos
	tratamientosAPI := r.PathPrefix("/api/tratamientos").Subrouter()
	tratamientosAPI.HandleFunc("", tratamientoHandler.List).Methods("GET")
	tratamientosAPI.HandleFunc("", tratamientoHandler.Create).Methods("POST")
	tratamientosAPI.HandleFunc("/sync-desde-sigcd", tratamientoHandler.SyncDesdeSIGCD).Methods("POST")

	// Integración con Atención
	r.HandleFunc("/api/integracion/atencion/enviar-catalogo-tratamientos",
		tratamientoHandler.EnviarCatalogoAtencion).Methods("POST")

	// Presupuestos (the singular prefix survives for older consumers)
	for _, prefix := range []string{"/api/presupuestos", "/api/presupuesto"} {
		presupuestosAPI := r.PathPrefix(prefix).Subrouter()
		presupuestosAPI.HandleFunc("", presupuestoHandler.List).Methods("GET")
		presupuestosAPI.HandleFunc("/crear", presupuestoHandler.Crear).Methods("POST")
		presupuestosAPI.HandleFunc("/solicita_presp", presupuestoHandler.Crear).Methods("POST")
		presupuestosAPI.HandleFunc("/{id}", presupuestoHandler.GetDetalle).Methods("GET")
	}

	// Cobros
	cobrosAPI := r.PathPrefix("/api/cobros").Subrouter()
	cobrosAPI.HandleFunc("", cobroHandler.Registrar).Methods("POST")
	cobrosAPI.HandleFunc("/citas-pendientes", cobroHandler.CitasPendientes).Methods("GET")
	cobrosAPI.HandleFunc("/list", cobroHandler.ListPorPaciente).Methods("GET")
	cobrosAPI.HandleFunc("/{id}", cobroHandler.Get).Methods("GET")
	cobrosAPI.HandleFunc("/{id}/comprobante", cobroHandler.Comprobante).Methods("GET")

	// Saldo
	r.HandleFunc("/api/saldo/{idPaciente}", saldoHandler.Get).Methods("GET")

	// Arqueo
	arqueoAPI := r.PathPrefix("/api/arqueo").Subrouter()
	arqueoAPI.HandleFunc("/generar", arqueoHandler.Generar).Methods("POST")
	arqueoAPI.HandleFunc("", arqueoHandler.Guardar).Methods("POST")
	arqueoAPI.HandleFunc("", arqueoHandler.List).Methods("GET")
	arqueoAPI.HandleFunc("/{id}", arqueoHandler.Get).Methods("GET")
	arqueoAPI.HandleFunc("/{id}/pdf", arqueoHandler.PDF).Methods("GET")

	// Health & metrics
	r.HandleFunc("/api/health", healthHandler.APIHealth).Methods("GET")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
