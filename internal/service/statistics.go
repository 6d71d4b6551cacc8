package service

import (
	"context"
	"fmt"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type OccupancyReport struct {
	Percentage float64 `json:"percentage"`
	InRental   int     `json:"in_rental"`
	Total      int     `json:"total"`
}

type RentalCount struct {
	Plate string `json:"plate"`
	Count int    `json:"count"`
}

type Profitability struct {
	Plate  string  `json:"plate"`
	Amount float64 `json:"amount"`
}

// ComputeOccupancy reports the share of the fleet currently in rental. An empty fleet is 0%.
func ComputeOccupancy(vehicles []*domain.Vehicle) OccupancyReport {
	report := OccupancyReport{Total: len(vehicles)}
	for _, v := range vehicles {
		if v.State() == domain.VehicleStateInRental {
			report.InRental++
		}
	}
	if report.Total > 0 {
		report.Percentage = float64(report.InRental) / float64(report.Total) * 100
	}
	return report
}

// plateTally keeps per-plate totals in first-seen order so ties resolve to the earliest plate.
type plateTally struct {
	order  []string
	values map[string]float64
}

func newPlateTally() *plateTally {
	return &plateTally{values: make(map[string]float64)}
}

func (t *plateTally) add(plate string, amount float64) {
	if _, ok := t.values[plate]; !ok {
		t.order = append(t.order, plate)
	}
	t.values[plate] += amount
}

func (t *plateTally) max() (string, float64) {
	best := ""
	var bestValue float64
	for i, plate := range t.order {
		if v := t.values[plate]; i == 0 || v > bestValue {
			best, bestValue = plate, v
		}
	}
	return best, bestValue
}

func (t *plateTally) min() (string, float64) {
	worst := ""
	var worstValue float64
	for i, plate := range t.order {
		if v := t.values[plate]; i == 0 || v < worstValue {
			worst, worstValue = plate, v
		}
	}
	return worst, worstValue
}

func rentalsInPeriod(rentals []*domain.Rental, period domain.DateRange) []*domain.Rental {
	var filtered []*domain.Rental
	for _, r := range rentals {
		if period.Overlaps(r.Range()) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func countByPlate(rentals []*domain.Rental, period *domain.DateRange) (*plateTally, error) {
	if period == nil {
		return nil, fmt.Errorf("%w: rental frequency report", domain.ErrPeriodRequired)
	}
	filtered := rentalsInPeriod(rentals, *period)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no rentals in %s", domain.ErrInsufficientData, period)
	}
	tally := newPlateTally()
	for _, r := range filtered {
		tally.add(r.Plate(), 1)
	}
	return tally, nil
}

// MostRented counts rentals overlapping the period per plate. Ties go to the plate rented first.
func MostRented(rentals []*domain.Rental, period *domain.DateRange) (RentalCount, error) {
	tally, err := countByPlate(rentals, period)
	if err != nil {
		return RentalCount{}, err
	}
	plate, count := tally.max()
	return RentalCount{Plate: plate, Count: int(count)}, nil
}

func LeastRented(rentals []*domain.Rental, period *domain.DateRange) (RentalCount, error) {
	tally, err := countByPlate(rentals, period)
	if err != nil {
		return RentalCount{}, err
	}
	plate, count := tally.min()
	return RentalCount{Plate: plate, Count: int(count)}, nil
}

// profitByPlate is the income of finished rentals overlapping the period minus the lifetime
// maintenance cost, for every plate with income or a vehicle in the fleet.
func profitByPlate(rentals []*domain.Rental, vehicles []*domain.Vehicle, period *domain.DateRange) (*plateTally, error) {
	if period == nil {
		return nil, fmt.Errorf("%w: profitability report", domain.ErrPeriodRequired)
	}
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("%w: the fleet is empty", domain.ErrInsufficientData)
	}

	tally := newPlateTally()
	for _, r := range rentalsInPeriod(rentals, *period) {
		cost, err := r.TotalCost()
		if err != nil {
			continue
		}
		tally.add(r.Plate(), cost)
	}
	for _, v := range vehicles {
		tally.add(v.Plate(), -v.MaintenanceRecord().TotalCost())
	}
	return tally, nil
}

func MostProfitable(rentals []*domain.Rental, vehicles []*domain.Vehicle, period *domain.DateRange) (Profitability, error) {
	tally, err := profitByPlate(rentals, vehicles, period)
	if err != nil {
		return Profitability{}, err
	}
	plate, amount := tally.max()
	return Profitability{Plate: plate, Amount: amount}, nil
}

func LeastProfitable(rentals []*domain.Rental, vehicles []*domain.Vehicle, period *domain.DateRange) (Profitability, error) {
	tally, err := profitByPlate(rentals, vehicles, period)
	if err != nil {
		return Profitability{}, err
	}
	plate, amount := tally.min()
	return Profitability{Plate: plate, Amount: amount}, nil
}

// statisticsService computes under the fleet read lock; the reports it returns are plain values.
type statisticsService struct {
	lock        *FleetLock
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
}

func NewStatisticsService(lock *FleetLock, vehicleRepo repository.VehicleRepository, rentalRepo repository.RentalRepository) StatisticsService {
	return &statisticsService{lock: lock, vehicleRepo: vehicleRepo, rentalRepo: rentalRepo}
}

func (s *statisticsService) Occupancy(ctx context.Context) (OccupancyReport, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return OccupancyReport{}, err
	}
	report := ComputeOccupancy(vehicles)
	logger.Debug("Occupancy computed", "in_rental", report.InRental, "total", report.Total)
	return report, nil
}

func (s *statisticsService) MostRented(ctx context.Context, period *domain.DateRange) (RentalCount, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return RentalCount{}, err
	}
	return MostRented(rentals, period)
}

func (s *statisticsService) LeastRented(ctx context.Context, period *domain.DateRange) (RentalCount, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return RentalCount{}, err
	}
	return LeastRented(rentals, period)
}

func (s *statisticsService) MostProfitable(ctx context.Context, period *domain.DateRange) (Profitability, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rentals, vehicles, err := s.load(ctx)
	if err != nil {
		return Profitability{}, err
	}
	return MostProfitable(rentals, vehicles, period)
}

func (s *statisticsService) LeastProfitable(ctx context.Context, period *domain.DateRange) (Profitability, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rentals, vehicles, err := s.load(ctx)
	if err != nil {
		return Profitability{}, err
	}
	return LeastProfitable(rentals, vehicles, period)
}

func (s *statisticsService) load(ctx context.Context) ([]*domain.Rental, []*domain.Vehicle, error) {
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return rentals, vehicles, nil
}
