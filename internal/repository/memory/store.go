package memory

import (
	"rentacar-backend/internal/repository"
)

// Store keeps the fleet, reservations, rentals and customers in process memory.
type Store struct {
	repository.VehicleRepository
	repository.ReservationRepository
	repository.RentalRepository
	repository.CustomerRepository
	repository.LedgerRepository
}

func NewStore() *Store {
	return &Store{
		VehicleRepository:     NewVehicleRepository(),
		ReservationRepository: NewReservationRepository(),
		RentalRepository:      NewRentalRepository(),
		CustomerRepository:    NewCustomerRepository(),
		LedgerRepository:      NewLedgerRepository(),
	}
}
