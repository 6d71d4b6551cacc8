package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository/memory"
	"rentacar-backend/internal/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	lock         *service.FleetLock
	store        *memory.Store
	email        *MockEmailService
	fleet        service.FleetService
	reservations service.ReservationService
	rentals      service.RentalService
}

// newFixture wires the services over a fresh memory store with a registered customer "c-1".
func newFixture(t *testing.T, policy domain.MaintenancePolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	email := new(MockEmailService)
	lock := service.NewFleetLock()

	require.NoError(t, store.CustomerRepository.Create(context.Background(), &domain.Customer{
		ID: "c-1", LastName: "Perez", FirstName: "Ana", DocumentNumber: "30111222", Email: "ana@example.com",
	}))

	return &fixture{
		lock:         lock,
		store:        store,
		email:        email,
		fleet:        service.NewFleetService(lock, store.VehicleRepository),
		reservations: service.NewReservationService(lock, store.ReservationRepository, store.VehicleRepository, store.CustomerRepository),
		rentals: service.NewRentalService(lock, store.RentalRepository, store.VehicleRepository,
			store.ReservationRepository, store.LedgerRepository, email, policy),
	}
}

func (f *fixture) addVehicle(t *testing.T, plate string, category domain.Category, odometer float64) *domain.Vehicle {
	t.Helper()
	v, err := f.fleet.AddVehicle(context.Background(), plate, category, odometer)
	require.NoError(t, err)
	return v
}

// confirmed creates a reservation for [start, end) and confirms it on plate.
func (f *fixture) confirmed(t *testing.T, plate string, start, end time.Time) *domain.Reservation {
	t.Helper()
	ctx := context.Background()
	res, err := f.reservations.CreatePending(ctx, "c-1", start, end)
	require.NoError(t, err)
	res, err = f.reservations.Confirm(ctx, res.ID, plate)
	require.NoError(t, err)
	return res
}

// started confirms and starts a rental on plate for [start, end).
func (f *fixture) started(t *testing.T, plate string, start, end time.Time) *domain.Rental {
	t.Helper()
	res := f.confirmed(t, plate, start, end)
	started, err := f.rentals.StartScheduledToday(context.Background(), []*domain.Reservation{res}, start)
	require.NoError(t, err)
	require.Len(t, started, 1)
	return started[0]
}
