package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"
)

// Services holds the service dependencies of the REST API.
type Services struct {
	Auth         service.AuthService
	Fleet        service.FleetService
	Customers    service.CustomerService
	Reservations service.ReservationService
	Rentals      service.RentalService
	Statistics   service.StatisticsService
	Ledger       service.LedgerService
}

// RouterOptions configures the surrounding middleware.
type RouterOptions struct {
	AllowedOrigins []string
	// HealthCheck reports dependency health, e.g. a database ping. Optional.
	HealthCheck func(ctx context.Context) error
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewRouter(svc *Services, tokens security.TokenManager, opts RouterOptions) http.Handler {
	now := clock(time.Now)
	if opts.Now != nil {
		now = opts.Now
	}

	authH := NewAuthHandler(svc.Auth)
	vehicleH := NewVehicleHandler(svc.Fleet, svc.Ledger, now)
	customerH := NewCustomerHandler(svc.Customers)
	reservationH := NewReservationHandler(svc.Reservations)
	rentalH := NewRentalHandler(svc.Rentals, now)
	statsH := NewStatisticsHandler(svc.Statistics, svc.Ledger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorCode(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorCode(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	r.Use(RequestID, AccessLog, NewAuthMiddleware(tokens).Handler)

	r.HandleFunc("/health", healthHandler(opts.HealthCheck, now)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)

	// Fleet
	api.HandleFunc("/vehicles", vehicleH.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles", vehicleH.Create).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{plate}", vehicleH.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{plate}/odometer", vehicleH.UpdateOdometer).Methods(http.MethodPut)
	api.HandleFunc("/vehicles/{plate}/release", vehicleH.Release).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{plate}/ledger", vehicleH.Ledger).Methods(http.MethodGet)
	api.HandleFunc("/availability", vehicleH.Availability).Methods(http.MethodGet)
	api.HandleFunc("/quotes", vehicleH.Quote).Methods(http.MethodPost)

	// Customers
	api.HandleFunc("/customers", customerH.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", customerH.Register).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customerH.Get).Methods(http.MethodGet)

	// Reservations
	api.HandleFunc("/reservations", reservationH.List).Methods(http.MethodGet)
	api.HandleFunc("/reservations", reservationH.Create).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}", reservationH.Get).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}/confirm", reservationH.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/cancel", reservationH.Cancel).Methods(http.MethodPost)

	// Rentals
	api.HandleFunc("/rentals", rentalH.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/start", rentalH.StartToday).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", rentalH.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/finish", rentalH.Finish).Methods(http.MethodPost)

	// Statistics
	api.HandleFunc("/statistics/occupancy", statsH.Occupancy).Methods(http.MethodGet)
	api.HandleFunc("/statistics/rentals", statsH.RentalFrequency).Methods(http.MethodGet)
	api.HandleFunc("/statistics/profitability", statsH.Profitability).Methods(http.MethodGet)
	api.HandleFunc("/statistics/income", statsH.Income).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(false))

	return recovery(cors(r))
}

func healthHandler(check func(ctx context.Context) error, now clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn("Health check failed", "error", err)
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		writeJSON(w, code, map[string]string{
			"status": status,
			"time":   now().UTC().Format(time.RFC3339),
		})
	}
}

// recoveryLogger adapts the slog wrapper to gorilla/handlers.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("Handler panicked", "panic", fmt.Sprint(v...))
}
