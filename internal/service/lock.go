package service

import (
	"errors"
	"sync"

	"rentacar-backend/internal/domain"
)

var ErrInvalidArgument = errors.New("invalid argument")

// FleetLock guards every vehicle, reservation and rental held by the repositories.
// Mutations (confirm, cancel, start, finish, release) take the write lock, reads take the
// read lock, and nothing leaves a service except as a snapshot. All services must share
// the same instance.
type FleetLock struct {
	sync.RWMutex
}

func NewFleetLock() *FleetLock {
	return &FleetLock{}
}

func snapshotVehicles(vehicles []*domain.Vehicle) []*domain.Vehicle {
	out := make([]*domain.Vehicle, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.Clone()
	}
	return out
}

func snapshotReservations(reservations []*domain.Reservation) []*domain.Reservation {
	out := make([]*domain.Reservation, len(reservations))
	for i, r := range reservations {
		out[i] = r.Clone()
	}
	return out
}

func snapshotRentals(rentals []*domain.Rental) []*domain.Rental {
	out := make([]*domain.Rental, len(rentals))
	for i, r := range rentals {
		out[i] = r.Clone()
	}
	return out
}
