package service

import (
	"context"
	"time"

	"rentacar-backend/internal/domain"
)

type FleetService interface {
	AddVehicle(ctx context.Context, plate string, category domain.Category, odometer float64) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, plate string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Vehicle, error)
	ListInMaintenance(ctx context.Context) ([]*domain.Vehicle, error)
	IsAvailable(ctx context.Context, plate string, rng domain.DateRange) (bool, error)
	FindAvailable(ctx context.Context, category domain.Category, rng domain.DateRange) (*domain.Vehicle, error)
	UpdateOdometer(ctx context.Context, plate string, odometer float64) (*domain.Vehicle, error)
	ReleaseFromMaintenance(ctx context.Context, plate string, odometer, cost float64, today time.Time) (*domain.Vehicle, error)
	Quote(ctx context.Context, category domain.Category, rng domain.DateRange, kmDriven float64) (domain.RentalCostBreakdown, error)
}

type ReservationService interface {
	CreatePending(ctx context.Context, customerID string, start, end time.Time) (*domain.Reservation, error)
	Confirm(ctx context.Context, reservationID, plate string) (*domain.Reservation, error)
	ConfirmByCategory(ctx context.Context, reservationID string, category domain.Category) (*domain.Reservation, error)
	Cancel(ctx context.Context, reservationID string) (*domain.Reservation, error)
	Get(ctx context.Context, reservationID string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	ListConfirmed(ctx context.Context) ([]*domain.Reservation, error)
}

// RentalService is the rental lifecycle manager.
type RentalService interface {
	StartScheduledToday(ctx context.Context, reservations []*domain.Reservation, today time.Time) ([]*domain.Rental, error)
	StartConfirmedToday(ctx context.Context, today time.Time) ([]*domain.Rental, error)
	Finish(ctx context.Context, rentalID string, finalOdometer float64, today time.Time) (*FinishResult, error)
	Get(ctx context.Context, rentalID string) (*domain.Rental, error)
	List(ctx context.Context) ([]*domain.Rental, error)
	ListActive(ctx context.Context) ([]*domain.Rental, error)
}

type StatisticsService interface {
	Occupancy(ctx context.Context) (OccupancyReport, error)
	MostRented(ctx context.Context, period *domain.DateRange) (RentalCount, error)
	LeastRented(ctx context.Context, period *domain.DateRange) (RentalCount, error)
	MostProfitable(ctx context.Context, period *domain.DateRange) (Profitability, error)
	LeastProfitable(ctx context.Context, period *domain.DateRange) (Profitability, error)
}

type CustomerService interface {
	Register(ctx context.Context, customer *domain.Customer) error
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

// LedgerService reads the audit trail of finished rentals.
type LedgerService interface {
	History(ctx context.Context, plate string) ([]domain.LedgerEntry, error)
	Income(ctx context.Context, period *domain.DateRange) (float64, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}

type EmailService interface {
	SendMaintenanceNotice(ctx context.Context, plate string, reasons []string, today time.Time) error
	SendMaintenanceReminder(ctx context.Context, plates []string, today time.Time) error
}

// FinishResult reports what finishing a rental did to its vehicle.
type FinishResult struct {
	Rental         *domain.Rental      `json:"rental"`
	MaintenanceDue bool                `json:"maintenance_due"`
	Reasons        []string            `json:"reasons,omitempty"`
	VehicleState   domain.VehicleState `json:"vehicle_state"`
}
