package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type reservationService struct {
	lock            *FleetLock
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	customerRepo    repository.CustomerRepository
	now             func() time.Time
}

func NewReservationService(
	lock *FleetLock,
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
) ReservationService {
	return &reservationService{
		lock:            lock,
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		customerRepo:    customerRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *reservationService) CreatePending(ctx context.Context, customerID string, start, end time.Time) (*domain.Reservation, error) {
	logger.EnterMethod("ReservationService.CreatePending", "customer_id", customerID, "start", start, "end", end)

	rng, err := domain.NewDateRange(start, end)
	if err != nil {
		logger.ExitMethodWithError("ReservationService.CreatePending", err)
		return nil, err
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		logger.ExitMethodWithError("ReservationService.CreatePending", err)
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	res := domain.NewReservation(uuid.NewString(), customerID, rng, s.now())
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		logger.ExitMethodWithError("ReservationService.CreatePending", err)
		return nil, err
	}

	logger.Info("Reservation created", "reservation_id", res.ID, "customer_id", customerID, "range", rng.String())
	logger.ExitMethod("ReservationService.CreatePending")
	return res.Clone(), nil
}

// Confirm blocks the reservation's range on the given vehicle. Only the dates are checked: a vehicle
// in maintenance may take a future booking, and the start sweep re-checks its state. When the
// vehicle is not free the reservation is cancelled, the vehicle is left untouched and
// ErrVehicleUnavailable is returned.
func (s *reservationService) Confirm(ctx context.Context, reservationID, plate string) (*domain.Reservation, error) {
	logger.EnterMethod("ReservationService.Confirm", "reservation_id", reservationID, "plate", plate)
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		logger.ExitMethodWithError("ReservationService.Confirm", err)
		return nil, err
	}
	v, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		logger.ExitMethodWithError("ReservationService.Confirm", err)
		return nil, err
	}

	if err := s.confirmWith(res, v); err != nil {
		logger.ExitMethodWithError("ReservationService.Confirm", err)
		return nil, err
	}
	logger.ExitMethod("ReservationService.Confirm")
	return res.Clone(), nil
}

// ConfirmByCategory assigns the first Available vehicle of the category that is free for the range.
// If there is none the reservation is cancelled.
func (s *reservationService) ConfirmByCategory(ctx context.Context, reservationID string, category domain.Category) (*domain.Reservation, error) {
	logger.EnterMethod("ReservationService.ConfirmByCategory", "reservation_id", reservationID, "category", category)
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		logger.ExitMethodWithError("ReservationService.ConfirmByCategory", err)
		return nil, err
	}
	if res.Status() != domain.ReservationStatusPending {
		err := fmt.Errorf("%w: reservation %s is %s", domain.ErrReservationNotValid, res.ID, res.Status())
		logger.ExitMethodWithError("ReservationService.ConfirmByCategory", err)
		return nil, err
	}

	v, err := findAvailable(ctx, s.vehicleRepo, category, res.Range)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleUnavailable) {
			_ = res.Cancel()
			logger.Warn("Reservation cancelled, no vehicle available", "reservation_id", res.ID, "category", category)
		}
		logger.ExitMethodWithError("ReservationService.ConfirmByCategory", err)
		return nil, err
	}

	if err := s.confirmWith(res, v); err != nil {
		logger.ExitMethodWithError("ReservationService.ConfirmByCategory", err)
		return nil, err
	}
	logger.ExitMethod("ReservationService.ConfirmByCategory")
	return res.Clone(), nil
}

func (s *reservationService) confirmWith(res *domain.Reservation, v *domain.Vehicle) error {
	if err := res.ConfirmWith(v); err != nil {
		if errors.Is(err, domain.ErrVehicleUnavailable) {
			logger.Warn("Reservation cancelled, vehicle not free", "reservation_id", res.ID, "plate", v.Plate(), "range", res.Range.String())
		}
		return err
	}
	logger.Info("Reservation confirmed", "reservation_id", res.ID, "plate", v.Plate(), "range", res.Range.String())
	return nil
}

// Cancel releases the blocked range, if any, and cancels the reservation.
func (s *reservationService) Cancel(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	logger.EnterMethod("ReservationService.Cancel", "reservation_id", reservationID)
	s.lock.Lock()
	defer s.lock.Unlock()

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		logger.ExitMethodWithError("ReservationService.Cancel", err)
		return nil, err
	}

	var v *domain.Vehicle
	plate, assigned := res.Plate()
	if assigned {
		if v, err = s.vehicleRepo.GetByPlate(ctx, plate); err != nil {
			logger.ExitMethodWithError("ReservationService.Cancel", err)
			return nil, err
		}
	}
	if err := res.Cancel(); err != nil {
		logger.ExitMethodWithError("ReservationService.Cancel", err)
		return nil, err
	}
	if v != nil {
		v.Unblock(res.Range)
	}

	logger.Info("Reservation cancelled", "reservation_id", res.ID, "plate", plate)
	logger.ExitMethod("ReservationService.Cancel")
	return res.Clone(), nil
}

func (s *reservationService) Get(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

func (s *reservationService) List(ctx context.Context) ([]*domain.Reservation, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return snapshotReservations(reservations), nil
}

func (s *reservationService) ListConfirmed(ctx context.Context) ([]*domain.Reservation, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	confirmed, err := s.reservationRepo.ListByStatus(ctx, domain.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	return snapshotReservations(confirmed), nil
}
