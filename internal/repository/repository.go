package repository

import (
	"context"
	"time"

	"rentacar-backend/internal/domain"
)

// Lookups return domain.ErrNotFound for unknown keys and creates return
// domain.ErrAlreadyExists for duplicates.

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Vehicle, error)
	ListByState(ctx context.Context, state domain.VehicleState) ([]*domain.Vehicle, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	List(ctx context.Context) ([]*domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

// LedgerRepository is the append-only log of finished rentals.
type LedgerRepository interface {
	Record(ctx context.Context, entry *domain.LedgerEntry) error
	ListByPlate(ctx context.Context, plate string) ([]domain.LedgerEntry, error)
	IncomeBetween(ctx context.Context, from, to time.Time) (float64, error)
}
