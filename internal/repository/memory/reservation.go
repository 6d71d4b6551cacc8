package memory

import (
	"context"
	"fmt"
	"sync"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type reservationRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Reservation
	order []string
}

func NewReservationRepository() repository.ReservationRepository {
	return &reservationRepository{byID: make(map[string]*domain.Reservation)}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[reservation.ID]; ok {
		return fmt.Errorf("reservation %s: %w", reservation.ID, domain.ErrAlreadyExists)
	}
	r.byID[reservation.ID] = reservation
	r.order = append(r.order, reservation.ID)
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return res, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Reservation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, res := range all {
		if res.Status() == status {
			out = append(out, res)
		}
	}
	return out, nil
}
