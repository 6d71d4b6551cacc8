package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestVehicleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository()

	compact, err := domain.NewVehicle("AA111AA", domain.CategoryCompact, 0)
	require.NoError(t, err)
	suv, err := domain.NewVehicle("BB222BB", domain.CategorySUV, 0)
	require.NoError(t, err)

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, compact))
		require.NoError(t, repo.Create(ctx, suv))
		assert.ErrorIs(t, repo.Create(ctx, compact), domain.ErrAlreadyExists)
	})

	t.Run("GetByPlate", func(t *testing.T) {
		v, err := repo.GetByPlate(ctx, " aa111aa")
		require.NoError(t, err)
		assert.Same(t, compact, v)

		_, err = repo.GetByPlate(ctx, "ZZ999ZZ")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List keeps registration order", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "AA111AA", all[0].Plate())
		assert.Equal(t, "BB222BB", all[1].Plate())
	})

	t.Run("Filters", func(t *testing.T) {
		suvs, err := repo.ListByCategory(ctx, domain.CategorySUV)
		require.NoError(t, err)
		assert.Len(t, suvs, 1)

		_, err = suv.ApplyTransition(domain.ActionStartRental)
		require.NoError(t, err)
		rented, err := repo.ListByState(ctx, domain.VehicleStateInRental)
		require.NoError(t, err)
		require.Len(t, rented, 1)
		assert.Equal(t, "BB222BB", rented[0].Plate())
	})
}

func TestReservationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	rng := domain.MustDateRange(day(10), day(12))

	pending := domain.NewReservation("r-1", "c-1", rng, day(1))
	cancelled := domain.NewReservation("r-2", "c-1", rng, day(1))
	require.NoError(t, cancelled.Cancel())

	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, cancelled))
	assert.ErrorIs(t, repo.Create(ctx, pending), domain.ErrAlreadyExists)

	got, err := repo.GetByID(ctx, "r-2")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, got.Status())

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repo.ListByStatus(ctx, domain.ReservationStatusPending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r-1", list[0].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRentalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRentalRepository()

	v, err := domain.NewVehicle("AA111AA", domain.CategoryCompact, 100)
	require.NoError(t, err)
	res := domain.NewReservation("r-1", "c-1", domain.MustDateRange(day(10), day(12)), day(1))
	require.NoError(t, res.ConfirmWith(v))
	rental := domain.NewRental("a-1", res, v)

	require.NoError(t, repo.Create(ctx, rental))
	assert.ErrorIs(t, repo.Create(ctx, rental), domain.ErrAlreadyExists)

	active, err := repo.ListByStatus(ctx, domain.RentalStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, rental.Finish(200))
	active, err = repo.ListByStatus(ctx, domain.RentalStatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	got, err := repo.GetByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusFinished, got.Status())
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	c := &domain.Customer{ID: "c-1", LastName: "Perez", FirstName: "Ana", DocumentNumber: "30111222", Email: "ana@example.com"}
	require.NoError(t, repo.Create(ctx, c))

	dup := &domain.Customer{ID: "c-2", DocumentNumber: "30111222"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrAlreadyExists)

	got, err := repo.GetByDocumentNumber(ctx, "30111222")
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)

	_, err = repo.GetByID(ctx, "c-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	require.NoError(t, repo.Record(ctx, &domain.LedgerEntry{Plate: "AA111AA", TotalCost: 100, FinishedOn: day(5)}))
	require.NoError(t, repo.Record(ctx, &domain.LedgerEntry{Plate: "BB222BB", TotalCost: 50, FinishedOn: day(10)}))
	require.NoError(t, repo.Record(ctx, &domain.LedgerEntry{Plate: "AA111AA", TotalCost: 25, FinishedOn: day(20)}))

	entries, err := repo.ListByPlate(ctx, "aa111aa")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)

	income, err := repo.IncomeBetween(ctx, day(5), day(20))
	require.NoError(t, err)
	assert.InDelta(t, 150.0, income, 1e-9)
}
