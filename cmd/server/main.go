package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"clinica-caja/internal/atencion"
	"clinica-caja/internal/backup"
	"clinica-caja/internal/cache"
	"clinica-caja/internal/config"
	"clinica-caja/internal/database"
	"clinica-caja/internal/db"
	"clinica-caja/internal/handlers"
	"clinica-caja/internal/health"
	h "clinica-caja/internal/http"
	"clinica-caja/internal/middleware"
	"clinica-caja/internal/monitoring"
	"clinica-caja/internal/repositories"
	"clinica-caja/internal/services"
	"clinica-caja/internal/sigcd"
)

func main() {
	port := flag.Int("port", 0, "override the configured HTTP port")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; the catalog just reads from Postgres without it
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache deshabilitado: %v", err)
	}

	log.Println("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewChecker(pool)

	// Sibling service clients
	sigcdClient := sigcd.NewClient(cfg.SIGCD.BaseURL, time.Duration(cfg.SIGCD.TimeoutSeconds)*time.Second)
	atencionClient := atencion.NewClient(cfg.Atencion.BaseURL, cfg.Atencion.CatalogoEndpoint,
		time.Duration(cfg.Atencion.TimeoutSeconds)*time.Second)

	// Offsite arqueo backups, enabled only when a bucket is configured
	var archiver services.ArqueoArchiver
	backupSvc, err := backup.NewService(ctx, backup.Config{
		Endpoint:  cfg.Backup.Endpoint,
		AccessKey: cfg.Backup.AccessKey,
		SecretKey: cfg.Backup.SecretKey,
		Bucket:    cfg.Backup.Bucket,
		Region:    cfg.Backup.Region,
	})
	if err != nil {
		log.Printf("[Backup] Respaldo de arqueos deshabilitado: %v", err)
	} else if backupSvc != nil {
		archiver = backupSvc
	}

	// Repositories
	pacienteRepo := repositories.NewPacienteRepository(pool)
	tratamientoRepo := repositories.NewTratamientoRepository(pool)
	presupuestoRepo := repositories.NewPresupuestoRepository(pool)
	pagoRepo := repositories.NewPagoRepository(pool)
	saldoRepo := repositories.NewSaldoRepository(pool)
	arqueoRepo := repositories.NewArqueoRepository(pool)

	// Services
	pacienteService := services.NewPacienteService(pacienteRepo, sigcdClient)
	tratamientoService := services.NewTratamientoService(tratamientoRepo, atencionClient)
	presupuestoService := services.NewPresupuestoService(presupuestoRepo, pacienteRepo, tratamientoRepo, atencionClient)
	cobroService := services.NewCobroService(pagoRepo, pacienteRepo, sigcdClient)
	saldoService := services.NewSaldoService(saldoRepo)
	arqueoService := services.NewArqueoService(arqueoRepo, archiver)
	comprobanteService := services.NewComprobanteService()

	// Handlers
	pacienteHandler := handlers.NewPacienteHandler(pacienteService)
	tratamientoHandler := handlers.NewTratamientoHandler(tratamientoService)
	presupuestoHandler := handlers.NewPresupuestoHandler(presupuestoService)
	cobroHandler := handlers.NewCobroHandler(cobroService, comprobanteService)
	saldoHandler := handlers.NewSaldoHandler(saldoService)
	arqueoHandler := handlers.NewArqueoHandler(arqueoService, comprobanteService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		pacienteHandler,
		tratamientoHandler,
		presupuestoHandler,
		cobroHandler,
		saldoHandler,
		arqueoHandler,
		healthHandler,
	)

	var handler http.Handler = router
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.NewCORS(cfg)(handler)
	handler = middleware.PanicRecovery(handler)

	// Ops dashboard on the side port
	go monitoring.NewServer(pool, cfg.Server.MonitoringPort).Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Caja] clinica-caja-api escuchando en %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
