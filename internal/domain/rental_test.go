package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedRental(t *testing.T, rng DateRange, odometer float64) *Rental {
	t.Helper()
	v := newTestVehicle(t, CategoryCompact, odometer)
	res := NewReservation("r-1", "c-1", rng, rng.Start())
	require.NoError(t, res.ConfirmWith(v))
	return NewRental("a-1", res, v)
}

func TestNewRental(t *testing.T) {
	rng := MustDateRange(date(2025, 3, 10), date(2025, 3, 12))
	r := startedRental(t, rng, 10000)

	assert.Equal(t, "a-1", r.ID())
	assert.Equal(t, "r-1", r.ReservationID())
	assert.Equal(t, "c-1", r.CustomerID())
	assert.Equal(t, "AB123CD", r.Plate())
	assert.True(t, r.Range().Equal(rng))
	assert.InDelta(t, 10000.0, r.StartOdometer(), 1e-9)
	assert.Equal(t, RentalStatusActive, r.Status())
}

func TestRental_NotFinished(t *testing.T) {
	r := startedRental(t, MustDateRange(date(2025, 3, 10), date(2025, 3, 12)), 10000)

	_, err := r.KmDriven()
	assert.ErrorIs(t, err, ErrRentalNotFinished)
	_, err = r.TotalCost()
	assert.ErrorIs(t, err, ErrRentalNotFinished)
	_, err = r.CostBreakdown()
	assert.ErrorIs(t, err, ErrRentalNotFinished)
	_, err = r.FinalOdometer()
	assert.ErrorIs(t, err, ErrRentalNotFinished)
}

func TestRental_Finish(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := startedRental(t, MustDateRange(date(2025, 3, 10), date(2025, 3, 12)), 10000)
		require.NoError(t, r.Finish(10650))

		km, err := r.KmDriven()
		require.NoError(t, err)
		assert.InDelta(t, 650.0, km, 1e-9)

		cost, err := r.TotalCost()
		require.NoError(t, err)
		assert.InDelta(t, SeasonMedium.Factor()*127.5, cost, 1e-9)
		assert.Equal(t, RentalStatusFinished, r.Status())
	})

	t.Run("Odometer below start", func(t *testing.T) {
		r := startedRental(t, MustDateRange(date(2025, 3, 10), date(2025, 3, 12)), 10000)
		assert.ErrorIs(t, r.Finish(9999), ErrInvalidOdometer)
		assert.Equal(t, RentalStatusActive, r.Status())
		_, err := r.TotalCost()
		assert.ErrorIs(t, err, ErrRentalNotFinished)
	})

	t.Run("Finish twice", func(t *testing.T) {
		r := startedRental(t, MustDateRange(date(2025, 12, 10), date(2025, 12, 12)), 10000)
		require.NoError(t, r.Finish(10000))
		assert.ErrorIs(t, r.Finish(10100), ErrRentalNotActive)

		cost, err := r.TotalCost()
		require.NoError(t, err)
		assert.InDelta(t, 1.2*60, cost, 1e-9)
	})
}
