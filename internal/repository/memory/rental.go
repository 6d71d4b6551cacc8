package memory

import (
	"context"
	"fmt"
	"sync"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type rentalRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Rental
	order []string
}

func NewRentalRepository() repository.RentalRepository {
	return &rentalRepository{byID: make(map[string]*domain.Rental)}
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rental.ID()]; ok {
		return fmt.Errorf("rental %s: %w", rental.ID(), domain.ErrAlreadyExists)
	}
	r.byID[rental.ID()] = rental
	r.order = append(r.order, rental.ID())
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rental, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("rental %s: %w", id, domain.ErrNotFound)
	}
	return rental, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Rental, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, rental := range all {
		if rental.Status() == status {
			out = append(out, rental)
		}
	}
	return out, nil
}
