package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository/memory"
	"rentacar-backend/internal/service"
)

func TestRentalService_StartScheduledToday(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		started, err := f.rentals.StartConfirmedToday(ctx, date(2025, 3, 10))
		require.NoError(t, err)
		require.Len(t, started, 1)

		r := started[0]
		assert.Equal(t, "AA111AA", r.Plate())
		assert.Equal(t, res.ID, r.ReservationID())
		assert.InDelta(t, 10000.0, r.StartOdometer(), 1e-9)
		res, err = f.reservations.Get(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusFulfilled, res.Status())

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStateInRental, v.State())

		active, err := f.rentals.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})

	t.Run("Skips unsuitable reservations", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		f.addVehicle(t, "BB222BB", domain.CategorySedan, 5000)

		later := f.confirmed(t, "AA111AA", date(2025, 3, 11), date(2025, 3, 13))
		pending, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 3, 10), date(2025, 3, 12))
		require.NoError(t, err)
		today := f.confirmed(t, "BB222BB", date(2025, 3, 10), date(2025, 3, 12))

		started, err := f.rentals.StartScheduledToday(ctx, []*domain.Reservation{later, pending, today}, date(2025, 3, 10))
		require.NoError(t, err)
		require.Len(t, started, 1)
		assert.Equal(t, "BB222BB", started[0].Plate())
		assert.Equal(t, domain.ReservationStatusConfirmed, later.Status())
		assert.Equal(t, domain.ReservationStatusPending, pending.Status())
	})

	t.Run("Skips fulfilled reservation", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		_, err := f.rentals.StartScheduledToday(ctx, []*domain.Reservation{res}, date(2025, 3, 10))
		require.NoError(t, err)

		again, err := f.rentals.StartScheduledToday(ctx, []*domain.Reservation{res}, date(2025, 3, 10))
		require.NoError(t, err)
		assert.Empty(t, again)
	})
}

func TestRentalService_Finish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		r := f.started(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		result, err := f.rentals.Finish(ctx, r.ID(), 10650, date(2025, 3, 12))
		require.NoError(t, err)
		assert.False(t, result.MaintenanceDue)
		assert.Equal(t, domain.VehicleStateAvailable, result.VehicleState)

		cost, err := result.Rental.TotalCost()
		require.NoError(t, err)
		assert.InDelta(t, domain.SeasonMedium.Factor()*127.5, cost, 1e-9)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.InDelta(t, 10650.0, v.Odometer(), 1e-9)
		assert.Empty(t, v.BlockedRanges())
		assert.Equal(t, 1, v.MaintenanceRecord().RentalsSinceService())

		entries, err := f.store.LedgerRepository.ListByPlate(ctx, "AA111AA")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, r.ID(), entries[0].RentalID)
		assert.InDelta(t, 127.5, entries[0].TotalCost, 1e-9)
		f.email.AssertNotCalled(t, "SendMaintenanceNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Maintenance due on the second rental", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy(domain.ByRentalCount{Threshold: 1}))
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)

		first := f.started(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))
		result, err := f.rentals.Finish(ctx, first.ID(), 10100, date(2025, 3, 12))
		require.NoError(t, err)
		assert.False(t, result.MaintenanceDue)
		assert.Equal(t, domain.VehicleStateAvailable, result.VehicleState)

		second := f.started(t, "AA111AA", date(2025, 3, 15), date(2025, 3, 17))
		f.email.On("SendMaintenanceNotice", ctx, "AA111AA", []string{"rentals>=1"}, date(2025, 3, 17)).Return(nil)

		result, err = f.rentals.Finish(ctx, second.ID(), 10300, date(2025, 3, 17))
		require.NoError(t, err)
		assert.True(t, result.MaintenanceDue)
		assert.Equal(t, []string{"rentals>=1"}, result.Reasons)
		assert.Equal(t, domain.VehicleStateInMaintenance, result.VehicleState)
		f.email.AssertExpectations(t)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.True(t, v.MaintenanceRequired())
		hold, ok := v.MaintenanceHold()
		require.True(t, ok)
		assert.True(t, hold.Equal(domain.OneDayFrom(date(2025, 3, 17))))
		assert.False(t, v.IsAvailable(domain.OneDayFrom(date(2025, 3, 17))))

		inMaintenance, err := f.fleet.ListInMaintenance(ctx)
		require.NoError(t, err)
		assert.Len(t, inMaintenance, 1)

		released, err := f.fleet.ReleaseFromMaintenance(ctx, "AA111AA", 10300, 250, date(2025, 3, 18))
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStateAvailable, released.State())
		assert.False(t, released.MaintenanceRequired())
		assert.Empty(t, released.BlockedRanges())
		assert.InDelta(t, 250.0, released.MaintenanceRecord().TotalCost(), 1e-9)
	})

	t.Run("Odometer below start leaves everything untouched", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		r := f.started(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		_, err := f.rentals.Finish(ctx, r.ID(), 9000, date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrInvalidOdometer)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStateInRental, v.State())
		assert.Len(t, v.BlockedRanges(), 1)
		assert.InDelta(t, 10000.0, v.Odometer(), 1e-9)
		r, err = f.rentals.Get(ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, r.Status())
	})

	t.Run("Vehicle not in rental leaves everything untouched", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		// A rental whose vehicle never left Available.
		stored, err := f.store.ReservationRepository.GetByID(ctx, res.ID)
		require.NoError(t, err)
		vehicle, err := f.store.VehicleRepository.GetByPlate(ctx, "AA111AA")
		require.NoError(t, err)
		require.NoError(t, f.store.RentalRepository.Create(ctx, domain.NewRental("r-1", stored, vehicle)))

		_, err = f.rentals.Finish(ctx, "r-1", 10650, date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		r, err := f.rentals.Get(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, r.Status())
		_, err = r.TotalCost()
		assert.ErrorIs(t, err, domain.ErrRentalNotFinished)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStateAvailable, v.State())
		assert.InDelta(t, 10000.0, v.Odometer(), 1e-9)
		require.Len(t, v.BlockedRanges(), 1)
		assert.True(t, v.BlockedRanges()[0].Equal(res.Range))
		assert.Equal(t, 0, v.MaintenanceRecord().RentalsSinceService())
		assert.False(t, v.MaintenanceRequired())

		entries, err := f.store.LedgerRepository.ListByPlate(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Finish twice", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		r := f.started(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		_, err := f.rentals.Finish(ctx, r.ID(), 10100, date(2025, 3, 12))
		require.NoError(t, err)
		_, err = f.rentals.Finish(ctx, r.ID(), 10200, date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrRentalNotActive)
	})

	t.Run("Unknown rental", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		_, err := f.rentals.Finish(ctx, "missing", 100, date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalService_Finish_SideEffectFailures(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	lock := service.NewFleetLock()
	ledgerRepo := new(MockLedgerRepo)
	emailSvc := new(MockEmailService)

	require.NoError(t, store.CustomerRepository.Create(ctx, &domain.Customer{ID: "c-1", DocumentNumber: "30111222"}))
	fleet := service.NewFleetService(lock, store.VehicleRepository)
	reservations := service.NewReservationService(lock, store.ReservationRepository, store.VehicleRepository, store.CustomerRepository)
	rentals := service.NewRentalService(lock, store.RentalRepository, store.VehicleRepository, store.ReservationRepository,
		ledgerRepo, emailSvc, domain.NewMaintenancePolicy(domain.ByRentalCount{Threshold: 0}))

	_, err := fleet.AddVehicle(ctx, "AA111AA", domain.CategorySUV, 500)
	require.NoError(t, err)
	res, err := reservations.CreatePending(ctx, "c-1", date(2025, 7, 1), date(2025, 7, 4))
	require.NoError(t, err)
	_, err = reservations.Confirm(ctx, res.ID, "AA111AA")
	require.NoError(t, err)
	started, err := rentals.StartConfirmedToday(ctx, date(2025, 7, 1))
	require.NoError(t, err)
	require.Len(t, started, 1)

	ledgerRepo.On("Record", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(errors.New("connection refused"))
	emailSvc.On("SendMaintenanceNotice", ctx, "AA111AA", mock.Anything, date(2025, 7, 4)).Return(errors.New("sendgrid down"))

	result, err := rentals.Finish(ctx, started[0].ID(), 900, date(2025, 7, 4))
	require.NoError(t, err)
	assert.True(t, result.MaintenanceDue)
	assert.Equal(t, domain.VehicleStateInMaintenance, result.VehicleState)
	ledgerRepo.AssertExpectations(t)
	emailSvc.AssertExpectations(t)
}
