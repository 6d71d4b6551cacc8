package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
)

func TestReservationService_CreatePending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NewMaintenancePolicy())

	t.Run("Success", func(t *testing.T) {
		res, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 3, 10), date(2025, 3, 12))
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, domain.ReservationStatusPending, res.Status())
		_, assigned := res.Plate()
		assert.False(t, assigned)
	})

	t.Run("Invalid range", func(t *testing.T) {
		_, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 3, 12), date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		_, err := f.reservations.CreatePending(ctx, "c-404", date(2025, 3, 10), date(2025, 3, 12))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReservationService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		assert.Equal(t, domain.ReservationStatusConfirmed, res.Status())
		plate, ok := res.Plate()
		assert.True(t, ok)
		assert.Equal(t, "AA111AA", plate)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		require.Len(t, v.BlockedRanges(), 1)
		assert.True(t, v.BlockedRanges()[0].Equal(res.Range))
	})

	t.Run("Double booking cancels the second reservation", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		second, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 3, 11), date(2025, 3, 13))
		require.NoError(t, err)
		_, err = f.reservations.Confirm(ctx, second.ID, "AA111AA")
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		second, err = f.reservations.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, second.Status())

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Len(t, v.BlockedRanges(), 1)

		confirmed, err := f.reservations.ListConfirmed(ctx)
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		assert.NotEqual(t, second.ID, confirmed[0].ID)
	})

	t.Run("Vehicle in maintenance takes a future booking", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy(domain.ByRentalCount{Threshold: 0}))
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		r := f.started(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))
		f.email.On("SendMaintenanceNotice", ctx, "AA111AA", mock.Anything, date(2025, 3, 12)).Return(nil)
		_, err := f.rentals.Finish(ctx, r.ID(), 10100, date(2025, 3, 12))
		require.NoError(t, err)

		// Only the dates are checked on confirm.
		res := f.confirmed(t, "AA111AA", date(2025, 3, 20), date(2025, 3, 22))
		assert.Equal(t, domain.ReservationStatusConfirmed, res.Status())

		// The sweep refuses to start it while the vehicle is still in maintenance.
		started, err := f.rentals.StartConfirmedToday(ctx, date(2025, 3, 20))
		require.NoError(t, err)
		assert.Empty(t, started)
		res, err = f.reservations.Get(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusConfirmed, res.Status())
	})

	t.Run("Already confirmed", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)
		f.addVehicle(t, "BB222BB", domain.CategoryCompact, 10000)
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		_, err := f.reservations.Confirm(ctx, res.ID, "BB222BB")
		assert.ErrorIs(t, err, domain.ErrReservationNotValid)
	})
}

func TestReservationService_ConfirmByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NewMaintenancePolicy())
	f.addVehicle(t, "AA111AA", domain.CategorySedan, 1000)
	f.addVehicle(t, "BB222BB", domain.CategorySedan, 2000)
	f.addVehicle(t, "CC333CC", domain.CategorySUV, 3000)

	t.Run("Success", func(t *testing.T) {
		first, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 4, 1), date(2025, 4, 5))
		require.NoError(t, err)
		first, err = f.reservations.ConfirmByCategory(ctx, first.ID, domain.CategorySedan)
		require.NoError(t, err)
		plate, _ := first.Plate()
		assert.Equal(t, "AA111AA", plate)

		second, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 4, 3), date(2025, 4, 6))
		require.NoError(t, err)
		second, err = f.reservations.ConfirmByCategory(ctx, second.ID, domain.CategorySedan)
		require.NoError(t, err)
		plate, _ = second.Plate()
		assert.Equal(t, "BB222BB", plate)
	})

	t.Run("No vehicle free", func(t *testing.T) {
		res, err := f.reservations.CreatePending(ctx, "c-1", date(2025, 4, 4), date(2025, 4, 5))
		require.NoError(t, err)
		_, err = f.reservations.ConfirmByCategory(ctx, res.ID, domain.CategorySedan)
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		res, err = f.reservations.Get(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, res.Status())
	})
}

func TestReservationService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NewMaintenancePolicy())
	f.addVehicle(t, "AA111AA", domain.CategoryCompact, 10000)

	t.Run("Releases the range", func(t *testing.T) {
		res := f.confirmed(t, "AA111AA", date(2025, 3, 10), date(2025, 3, 12))

		cancelled, err := f.reservations.Cancel(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status())

		ok, err := f.fleet.IsAvailable(ctx, "AA111AA", res.Range)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Fulfilled reservation", func(t *testing.T) {
		r := f.started(t, "AA111AA", date(2025, 3, 20), date(2025, 3, 22))
		_, err := f.reservations.Cancel(ctx, r.ReservationID())
		assert.ErrorIs(t, err, domain.ErrReservationNotValid)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Len(t, v.BlockedRanges(), 1)
	})
}
