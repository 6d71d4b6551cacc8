package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentacar-backend/internal/api/http"
	"rentacar-backend/internal/config"
	"rentacar-backend/internal/jobs"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/repository/memory"
	"rentacar-backend/internal/repository/postgres"
	"rentacar-backend/internal/scheduler"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	hashPassword := flag.String("hash-password", "", "Print the bcrypt hash of a password for the operators list and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := security.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rent-a-Car backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	store := memory.NewStore()

	// The ledger goes to PostgreSQL when configured
	var ledgerRepo repository.LedgerRepository = store.LedgerRepository
	var healthCheck func(ctx context.Context) error
	if cfg.Database.Enabled {
		logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		pg := postgres.NewStore(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to create ledger schema: %v", err)
		}
		ledgerRepo = pg.LedgerRepository
		healthCheck = db.PingContext
	} else {
		logger.Info("Database disabled, ledger kept in memory")
	}

	policy, err := cfg.Maintenance.Policy()
	if err != nil {
		log.Fatalf("Invalid maintenance policy: %v", err)
	}
	for _, c := range policy.Criteria() {
		logger.Info("Maintenance criterion", "criterion", c.String())
	}

	// Initialize Services
	lock := service.NewFleetLock()
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	emailSvc := service.NewEmailService(cfg.SendGrid)

	fleetSvc := service.NewFleetService(lock, store.VehicleRepository)
	rentalSvc := service.NewRentalService(
		lock,
		store.RentalRepository,
		store.VehicleRepository,
		store.ReservationRepository,
		ledgerRepo,
		emailSvc,
		policy,
	)
	services := &httpapi.Services{
		Auth:         service.NewAuthService(cfg.Operators, tokenManager),
		Fleet:        fleetSvc,
		Customers:    service.NewCustomerService(store.CustomerRepository),
		Reservations: service.NewReservationService(lock, store.ReservationRepository, store.VehicleRepository, store.CustomerRepository),
		Rentals:      rentalSvc,
		Statistics:   service.NewStatisticsService(lock, store.VehicleRepository, store.RentalRepository),
		Ledger:       service.NewLedgerService(ledgerRepo),
	}
	if len(cfg.Operators) == 0 {
		logger.Warn("No operators configured, protected endpoints are unreachable")
	}

	// Daily jobs
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(&jobs.Services{Fleet: fleetSvc, Rentals: rentalSvc, Email: emailSvc}, cfg)
		cronScheduler, err = scheduler.NewScheduler(jobRunner)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(services, tokenManager, httpapi.RouterOptions{HealthCheck: healthCheck}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
