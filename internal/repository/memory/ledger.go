package memory

import (
	"context"
	"sync"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

// ledgerRepository is used when no database is configured.
type ledgerRepository struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func NewLedgerRepository() repository.LedgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) Record(ctx context.Context, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *ledgerRepository) ListByPlate(ctx context.Context, plate string) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range r.entries {
		if e.Plate == plateKey(plate) {
			out = append(out, e)
		}
	}
	return out, nil
}

// IncomeBetween sums entries finished in [from, to).
func (r *ledgerRepository) IncomeBetween(ctx context.Context, from, to time.Time) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, e := range r.entries {
		if !e.FinishedOn.Before(from) && e.FinishedOn.Before(to) {
			total += e.TotalCost
		}
	}
	return total, nil
}
