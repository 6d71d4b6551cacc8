package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type rentalService struct {
	lock            *FleetLock
	rentalRepo      repository.RentalRepository
	vehicleRepo     repository.VehicleRepository
	reservationRepo repository.ReservationRepository
	ledgerRepo      repository.LedgerRepository
	emailSvc        EmailService
	policy          domain.MaintenancePolicy
}

func NewRentalService(
	lock *FleetLock,
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	reservationRepo repository.ReservationRepository,
	ledgerRepo repository.LedgerRepository,
	emailSvc EmailService,
	policy domain.MaintenancePolicy,
) RentalService {
	return &rentalService{
		lock:            lock,
		rentalRepo:      rentalRepo,
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		ledgerRepo:      ledgerRepo,
		emailSvc:        emailSvc,
		policy:          policy,
	}
}

// StartScheduledToday starts a rental for every reservation that begins today, is confirmed
// and whose vehicle may start a rental. Anything else is skipped without error. Callers that
// re-run the sweep must pass a filtered list; no deduplication happens here. The reservations
// are matched by id against the stored ones, so snapshots are fine as input.
func (s *rentalService) StartScheduledToday(ctx context.Context, reservations []*domain.Reservation, today time.Time) ([]*domain.Rental, error) {
	logger.EnterMethod("RentalService.StartScheduledToday", "candidates", len(reservations), "today", today)
	s.lock.Lock()
	defer s.lock.Unlock()

	ids := make([]string, 0, len(reservations))
	for _, res := range reservations {
		ids = append(ids, res.ID)
	}
	return s.startLocked(ctx, ids, today)
}

// StartConfirmedToday runs the sweep over every confirmed reservation.
func (s *rentalService) StartConfirmedToday(ctx context.Context, today time.Time) ([]*domain.Rental, error) {
	logger.EnterMethod("RentalService.StartConfirmedToday", "today", today)
	s.lock.Lock()
	defer s.lock.Unlock()

	confirmed, err := s.reservationRepo.ListByStatus(ctx, domain.ReservationStatusConfirmed)
	if err != nil {
		logger.ExitMethodWithError("RentalService.StartConfirmedToday", err)
		return nil, err
	}
	ids := make([]string, 0, len(confirmed))
	for _, res := range confirmed {
		ids = append(ids, res.ID)
	}
	return s.startLocked(ctx, ids, today)
}

// startLocked expects the write lock to be held.
func (s *rentalService) startLocked(ctx context.Context, reservationIDs []string, today time.Time) ([]*domain.Rental, error) {
	var started []*domain.Rental
	for _, id := range reservationIDs {
		res, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			logger.Debug("Skipping reservation, not found", "reservation_id", id)
			continue
		}
		if !res.StartsOn(today) || !res.CanStartRental() {
			continue
		}
		plate, _ := res.Plate()
		v, err := s.vehicleRepo.GetByPlate(ctx, plate)
		if err != nil {
			logger.Debug("Skipping reservation, vehicle not found", "reservation_id", res.ID, "plate", plate)
			continue
		}
		if !v.State().CanStartRental() {
			logger.Debug("Skipping reservation, vehicle cannot start a rental", "reservation_id", res.ID, "plate", plate, "state", v.State())
			continue
		}

		rental := domain.NewRental(uuid.NewString(), res, v)
		if err := s.rentalRepo.Create(ctx, rental); err != nil {
			logger.ExitMethodWithError("RentalService.StartScheduledToday", err)
			return snapshotRentals(started), err
		}
		if err := res.MarkFulfilled(); err != nil {
			return snapshotRentals(started), err
		}
		from := v.State()
		to, err := v.ApplyTransition(domain.ActionStartRental)
		if err != nil {
			return snapshotRentals(started), err
		}

		logger.VehicleTransition(v.Plate(), string(domain.ActionStartRental), from.String(), to.String(), "rental_id", rental.ID())
		started = append(started, rental)
	}

	logger.ExitMethod("RentalService.StartScheduledToday", "started", len(started))
	return snapshotRentals(started), nil
}

// Finish closes a rental. Rental preconditions and the vehicle transition are both checked
// before anything is mutated; then the range is released, the maintenance policy is evaluated
// against the final odometer, the vehicle bookkeeping is committed and the transition runs.
// The ledger write and the maintenance notice happen after the fleet lock is released.
func (s *rentalService) Finish(ctx context.Context, rentalID string, finalOdometer float64, today time.Time) (*FinishResult, error) {
	logger.EnterMethod("RentalService.Finish", "rental_id", rentalID, "final_odometer", finalOdometer)

	result, err := s.finishLocked(ctx, rentalID, finalOdometer, today)
	if err != nil {
		logger.ExitMethodWithError("RentalService.Finish", err)
		return nil, err
	}

	s.recordLedger(ctx, result.Rental, today)
	if result.MaintenanceDue {
		plate := result.Rental.Plate()
		logger.Warn("Vehicle due for maintenance", "plate", plate, "reasons", result.Reasons)
		if err := s.emailSvc.SendMaintenanceNotice(ctx, plate, result.Reasons, today); err != nil {
			logger.Error("Failed to send maintenance notice", "plate", plate, "error", err)
		}
	}

	logger.ExitMethod("RentalService.Finish", "vehicle_state", result.VehicleState)
	return result, nil
}

func (s *rentalService) finishLocked(ctx context.Context, rentalID string, finalOdometer float64, today time.Time) (*FinishResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := rental.ValidateFinish(finalOdometer); err != nil {
		return nil, err
	}
	v, err := s.vehicleRepo.GetByPlate(ctx, rental.Plate())
	if err != nil {
		return nil, err
	}
	if err := v.CheckTransition(domain.ActionFinishRental); err != nil {
		return nil, err
	}

	if err := rental.Finish(finalOdometer); err != nil {
		return nil, err
	}
	v.Unblock(rental.Range())

	record := v.MaintenanceRecord()
	due := s.policy.IsDue(today, finalOdometer, record)
	reasons := s.policy.DueReasons(today, finalOdometer, record)
	v.RecordRentalFinished(finalOdometer, due, today)

	from := v.State()
	to, err := v.ApplyTransition(domain.ActionFinishRental)
	if err != nil {
		return nil, err
	}
	logger.VehicleTransition(v.Plate(), string(domain.ActionFinishRental), from.String(), to.String(), "rental_id", rental.ID(), "maintenance_due", due)

	return &FinishResult{
		Rental:         rental.Clone(),
		MaintenanceDue: due,
		Reasons:        reasons,
		VehicleState:   to,
	}, nil
}

// recordLedger failures are logged only; the in-memory rental stays authoritative.
func (s *rentalService) recordLedger(ctx context.Context, rental *domain.Rental, today time.Time) {
	entry, err := domain.NewLedgerEntry(rental, today)
	if err != nil {
		logger.Error("Failed to build ledger entry", "rental_id", rental.ID(), "error", err)
		return
	}
	if err := s.ledgerRepo.Record(ctx, entry); err != nil {
		logger.Error("Failed to record rental in ledger", "rental_id", rental.ID(), "error", err)
	}
}

func (s *rentalService) Get(ctx context.Context, rentalID string) (*domain.Rental, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return rental.Clone(), nil
}

func (s *rentalService) List(ctx context.Context) ([]*domain.Rental, error) {
	return s.list(func() ([]*domain.Rental, error) { return s.rentalRepo.List(ctx) })
}

func (s *rentalService) ListActive(ctx context.Context) ([]*domain.Rental, error) {
	return s.list(func() ([]*domain.Rental, error) { return s.rentalRepo.ListByStatus(ctx, domain.RentalStatusActive) })
}

func (s *rentalService) list(load func() ([]*domain.Rental, error)) ([]*domain.Rental, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rentals, err := load()
	if err != nil {
		return nil, err
	}
	return snapshotRentals(rentals), nil
}
