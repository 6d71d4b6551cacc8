package service

import (
	"context"
	"fmt"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type fleetService struct {
	lock        *FleetLock
	vehicleRepo repository.VehicleRepository
}

func NewFleetService(lock *FleetLock, vehicleRepo repository.VehicleRepository) FleetService {
	return &fleetService{lock: lock, vehicleRepo: vehicleRepo}
}

func (s *fleetService) AddVehicle(ctx context.Context, plate string, category domain.Category, odometer float64) (*domain.Vehicle, error) {
	logger.EnterMethod("FleetService.AddVehicle", "plate", plate, "category", category)
	s.lock.Lock()
	defer s.lock.Unlock()

	v, err := domain.NewVehicle(plate, category, odometer)
	if err != nil {
		logger.ExitMethodWithError("FleetService.AddVehicle", err)
		return nil, err
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		logger.ExitMethodWithError("FleetService.AddVehicle", err)
		return nil, err
	}

	logger.Info("Vehicle added to fleet", "plate", v.Plate(), "category", v.Category(), "odometer", v.Odometer())
	logger.ExitMethod("FleetService.AddVehicle")
	return v.Clone(), nil
}

func (s *fleetService) GetVehicle(ctx context.Context, plate string) (*domain.Vehicle, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

func (s *fleetService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.list(func() ([]*domain.Vehicle, error) { return s.vehicleRepo.List(ctx) })
}

func (s *fleetService) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Vehicle, error) {
	return s.list(func() ([]*domain.Vehicle, error) { return s.vehicleRepo.ListByCategory(ctx, category) })
}

func (s *fleetService) ListInMaintenance(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.list(func() ([]*domain.Vehicle, error) {
		return s.vehicleRepo.ListByState(ctx, domain.VehicleStateInMaintenance)
	})
}

func (s *fleetService) list(load func() ([]*domain.Vehicle, error)) ([]*domain.Vehicle, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	vehicles, err := load()
	if err != nil {
		return nil, err
	}
	return snapshotVehicles(vehicles), nil
}

func (s *fleetService) IsAvailable(ctx context.Context, plate string, rng domain.DateRange) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return false, err
	}
	return v.IsAvailable(rng), nil
}

// FindAvailable returns the first vehicle of the category, in registration order, that is
// currently Available and free for rng.
func (s *fleetService) FindAvailable(ctx context.Context, category domain.Category, rng domain.DateRange) (*domain.Vehicle, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, err := findAvailable(ctx, s.vehicleRepo, category, rng)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

func findAvailable(ctx context.Context, repo repository.VehicleRepository, category domain.Category, rng domain.DateRange) (*domain.Vehicle, error) {
	vehicles, err := repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	for _, v := range vehicles {
		if v.State() == domain.VehicleStateAvailable && v.IsAvailable(rng) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s vehicle free on %s", domain.ErrVehicleUnavailable, category, rng)
}

func (s *fleetService) UpdateOdometer(ctx context.Context, plate string, odometer float64) (*domain.Vehicle, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if err := v.SetOdometer(odometer); err != nil {
		return nil, err
	}
	logger.Info("Odometer corrected", "plate", v.Plate(), "odometer", odometer)
	return v.Clone(), nil
}

// ReleaseFromMaintenance checks the transition first, then records the service and
// makes the vehicle Available again.
func (s *fleetService) ReleaseFromMaintenance(ctx context.Context, plate string, odometer, cost float64, today time.Time) (*domain.Vehicle, error) {
	logger.EnterMethod("FleetService.ReleaseFromMaintenance", "plate", plate, "odometer", odometer, "cost", cost)
	s.lock.Lock()
	defer s.lock.Unlock()

	v, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		logger.ExitMethodWithError("FleetService.ReleaseFromMaintenance", err)
		return nil, err
	}
	if err := v.CheckTransition(domain.ActionReleaseFromMaintenance); err != nil {
		logger.ExitMethodWithError("FleetService.ReleaseFromMaintenance", err)
		return nil, err
	}
	if odometer < v.Odometer() {
		err := fmt.Errorf("%w: service reading %g is below current %g", domain.ErrInvalidOdometer, odometer, v.Odometer())
		logger.ExitMethodWithError("FleetService.ReleaseFromMaintenance", err)
		return nil, err
	}
	if cost < 0 {
		err := fmt.Errorf("%w: maintenance cost must not be negative", ErrInvalidArgument)
		logger.ExitMethodWithError("FleetService.ReleaseFromMaintenance", err)
		return nil, err
	}

	from := v.State()
	v.RegisterService(today, odometer, cost)
	to, err := v.ApplyTransition(domain.ActionReleaseFromMaintenance)
	if err != nil {
		return nil, err
	}
	logger.VehicleTransition(v.Plate(), string(domain.ActionReleaseFromMaintenance), from.String(), to.String(), "cost", cost)
	logger.ExitMethod("FleetService.ReleaseFromMaintenance")
	return v.Clone(), nil
}

// Quote prices a prospective rental with the category's default tariff.
func (s *fleetService) Quote(ctx context.Context, category domain.Category, rng domain.DateRange, kmDriven float64) (domain.RentalCostBreakdown, error) {
	tariff, err := domain.TariffFor(category)
	if err != nil {
		return domain.RentalCostBreakdown{}, err
	}
	return domain.CalculateRentalCost(rng, tariff, kmDriven), nil
}
