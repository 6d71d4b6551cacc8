package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

func TestFleetService_AddVehicle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NewMaintenancePolicy())

	t.Run("Success", func(t *testing.T) {
		v := f.addVehicle(t, "aa 111 aa", domain.CategorySUV, 42000)
		assert.Equal(t, "AA 111 AA", v.Plate())
		assert.Equal(t, domain.VehicleStateAvailable, v.State())
	})

	t.Run("Duplicate plate", func(t *testing.T) {
		_, err := f.fleet.AddVehicle(ctx, "AA 111 AA", domain.CategorySedan, 0)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("Negative odometer", func(t *testing.T) {
		_, err := f.fleet.AddVehicle(ctx, "ZZ999ZZ", domain.CategorySedan, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidOdometer)
	})
}

func TestFleetService_FindAvailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.NewMaintenancePolicy())
	f.addVehicle(t, "AA111AA", domain.CategoryCompact, 100)
	f.addVehicle(t, "BB222BB", domain.CategoryCompact, 100)
	f.confirmed(t, "AA111AA", date(2025, 5, 1), date(2025, 5, 3))

	t.Run("Skips blocked vehicle", func(t *testing.T) {
		v, err := f.fleet.FindAvailable(ctx, domain.CategoryCompact, domain.MustDateRange(date(2025, 5, 2), date(2025, 5, 4)))
		require.NoError(t, err)
		assert.Equal(t, "BB222BB", v.Plate())
	})

	t.Run("Touching ranges do not overlap", func(t *testing.T) {
		v, err := f.fleet.FindAvailable(ctx, domain.CategoryCompact, domain.MustDateRange(date(2025, 5, 3), date(2025, 5, 4)))
		require.NoError(t, err)
		assert.Equal(t, "AA111AA", v.Plate())
	})

	t.Run("No vehicle of category", func(t *testing.T) {
		_, err := f.fleet.FindAvailable(ctx, domain.CategorySUV, domain.MustDateRange(date(2025, 5, 3), date(2025, 5, 4)))
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
	})
}

func TestFleetService_ReleaseFromMaintenance(t *testing.T) {
	ctx := context.Background()

	t.Run("Vehicle not in maintenance", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy())
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 100)

		_, err := f.fleet.ReleaseFromMaintenance(ctx, "AA111AA", 100, 50, date(2025, 5, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		var transitionErr *domain.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, domain.VehicleStateAvailable, transitionErr.State)
	})

	t.Run("Invalid service data", func(t *testing.T) {
		f := newFixture(t, domain.NewMaintenancePolicy(domain.ByRentalCount{Threshold: 0}))
		f.addVehicle(t, "AA111AA", domain.CategoryCompact, 100)
		r := f.started(t, "AA111AA", date(2025, 5, 1), date(2025, 5, 2))
		f.email.On("SendMaintenanceNotice", ctx, "AA111AA", []string{"rentals>=0"}, date(2025, 5, 2)).Return(nil)
		_, err := f.rentals.Finish(ctx, r.ID(), 300, date(2025, 5, 2))
		require.NoError(t, err)

		_, err = f.fleet.ReleaseFromMaintenance(ctx, "AA111AA", 200, 50, date(2025, 5, 3))
		assert.ErrorIs(t, err, domain.ErrInvalidOdometer)
		_, err = f.fleet.ReleaseFromMaintenance(ctx, "AA111AA", 300, -5, date(2025, 5, 3))
		assert.ErrorIs(t, err, service.ErrInvalidArgument)

		v, err := f.fleet.GetVehicle(ctx, "AA111AA")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStateInMaintenance, v.State())
		assert.False(t, v.MaintenanceRecord().EverServiced())
	})
}

func TestFleetService_Quote(t *testing.T) {
	f := newFixture(t, domain.NewMaintenancePolicy())

	quote, err := f.fleet.Quote(context.Background(), domain.CategoryCompact,
		domain.MustDateRange(date(2025, 1, 10), date(2025, 1, 12)), 650)
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Days)
	assert.Equal(t, domain.SeasonHigh, quote.Season)
	assert.InDelta(t, 127.5, quote.BaseCost, 1e-9)
	assert.InDelta(t, 1.2*127.5, quote.TotalCost, 1e-9)

	_, err = f.fleet.Quote(context.Background(), domain.Category("TRUCK"), domain.MustDateRange(date(2025, 1, 10), date(2025, 1, 12)), 0)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}
