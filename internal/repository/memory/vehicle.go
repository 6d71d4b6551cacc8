package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type vehicleRepository struct {
	mu     sync.RWMutex
	byKey  map[string]*domain.Vehicle
	plates []string
}

func NewVehicleRepository() repository.VehicleRepository {
	return &vehicleRepository{byKey: make(map[string]*domain.Vehicle)}
}

func plateKey(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := plateKey(vehicle.Plate())
	if _, ok := r.byKey[key]; ok {
		return fmt.Errorf("vehicle %s: %w", key, domain.ErrAlreadyExists)
	}
	r.byKey[key] = vehicle
	r.plates = append(r.plates, key)
	return nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byKey[plateKey(plate)]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", plate, domain.ErrNotFound)
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return r.filter(func(*domain.Vehicle) bool { return true }), nil
}

func (r *vehicleRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Vehicle, error) {
	return r.filter(func(v *domain.Vehicle) bool { return v.Category() == category }), nil
}

func (r *vehicleRepository) ListByState(ctx context.Context, state domain.VehicleState) ([]*domain.Vehicle, error) {
	return r.filter(func(v *domain.Vehicle) bool { return v.State() == state }), nil
}

// filter keeps registration order.
func (r *vehicleRepository) filter(keep func(*domain.Vehicle) bool) []*domain.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Vehicle, 0, len(r.plates))
	for _, p := range r.plates {
		if v := r.byKey[p]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}
