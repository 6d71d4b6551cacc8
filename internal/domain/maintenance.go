package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"rentacar-backend/internal/utils"
)

// MaintenanceRecord holds the service counters of one vehicle.
// The zero value is a vehicle that was never serviced.
type MaintenanceRecord struct {
	lastServiceDate     *time.Time
	lastServiceOdometer *float64
	rentalsSinceService int
	costs               []float64
}

// RegisterService resets the rental counter and overwrites the last-service data.
func (m *MaintenanceRecord) RegisterService(date time.Time, odometer, cost float64) {
	m.lastServiceDate = &date
	m.lastServiceOdometer = &odometer
	m.rentalsSinceService = 0
	m.costs = append(m.costs, cost)
}

func (m *MaintenanceRecord) RegisterRentalCompleted() {
	m.rentalsSinceService++
}

func (m MaintenanceRecord) LastServiceDate() (time.Time, bool) {
	if m.lastServiceDate == nil {
		return time.Time{}, false
	}
	return *m.lastServiceDate, true
}

func (m MaintenanceRecord) LastServiceOdometer() (float64, bool) {
	if m.lastServiceOdometer == nil {
		return 0, false
	}
	return *m.lastServiceOdometer, true
}

func (m MaintenanceRecord) RentalsSinceService() int {
	return m.rentalsSinceService
}

func (m MaintenanceRecord) EverServiced() bool {
	return m.lastServiceDate != nil || m.lastServiceOdometer != nil
}

func (m MaintenanceRecord) TotalCost() float64 {
	var total float64
	for _, c := range m.costs {
		total += c
	}
	return total
}

func (m MaintenanceRecord) ServiceCount() int {
	return len(m.costs)
}

func (m MaintenanceRecord) clone() MaintenanceRecord {
	out := m
	out.costs = append([]float64(nil), m.costs...)
	return out
}

func (m MaintenanceRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LastServiceDate     *time.Time `json:"last_service_date,omitempty"`
		LastServiceOdometer *float64   `json:"last_service_odometer,omitempty"`
		RentalsSinceService int        `json:"rentals_since_service"`
		ServiceCount        int        `json:"service_count"`
		TotalCost           float64    `json:"total_cost"`
	}{m.lastServiceDate, m.lastServiceOdometer, m.rentalsSinceService, len(m.costs), m.TotalCost()})
}

// MaintenanceCriterion answers whether a vehicle is due for service.
// The set is closed: ByMileage, ByMonths and ByRentalCount.
type MaintenanceCriterion interface {
	IsDue(today time.Time, odometer float64, record MaintenanceRecord) bool
	String() string
	criterion()
}

// ByMileage is never due for a vehicle that was never serviced.
type ByMileage struct {
	ThresholdKm float64
}

func (c ByMileage) IsDue(_ time.Time, odometer float64, record MaintenanceRecord) bool {
	if !record.EverServiced() {
		return false
	}
	last, _ := record.LastServiceOdometer()
	return odometer-last >= c.ThresholdKm
}

func (c ByMileage) String() string { return fmt.Sprintf("mileage>=%gkm", c.ThresholdKm) }
func (ByMileage) criterion()       {}

// ByMonths compares calendar months only, so the day of month is ignored.
type ByMonths struct {
	ThresholdMonths int
}

func (c ByMonths) IsDue(today time.Time, _ float64, record MaintenanceRecord) bool {
	last, ok := record.LastServiceDate()
	if !ok {
		return false
	}
	return utils.MonthDifference(last, today) >= c.ThresholdMonths
}

func (c ByMonths) String() string { return fmt.Sprintf("months>=%d", c.ThresholdMonths) }
func (ByMonths) criterion()       {}

// ByRentalCount with a zero threshold is always due.
type ByRentalCount struct {
	Threshold int
}

func (c ByRentalCount) IsDue(_ time.Time, _ float64, record MaintenanceRecord) bool {
	return record.RentalsSinceService() >= c.Threshold
}

func (c ByRentalCount) String() string { return fmt.Sprintf("rentals>=%d", c.Threshold) }
func (ByRentalCount) criterion()       {}

const (
	CriterionMileage = "mileage"
	CriterionMonths  = "months"
	CriterionRentals = "rentals"
)

// ParseCriterion builds a criterion from its configuration kind.
func ParseCriterion(kind string, threshold float64) (MaintenanceCriterion, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: negative threshold %g for %q", ErrUnknownCriterion, threshold, kind)
	}
	switch strings.ToLower(kind) {
	case CriterionMileage:
		return ByMileage{ThresholdKm: threshold}, nil
	case CriterionMonths:
		n, err := wholeThreshold(kind, threshold)
		if err != nil {
			return nil, err
		}
		return ByMonths{ThresholdMonths: n}, nil
	case CriterionRentals:
		n, err := wholeThreshold(kind, threshold)
		if err != nil {
			return nil, err
		}
		return ByRentalCount{Threshold: n}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, kind)
	}
}

// Month and rental thresholds are counts.
func wholeThreshold(kind string, threshold float64) (int, error) {
	if threshold != math.Trunc(threshold) {
		return 0, fmt.Errorf("%w: %q threshold must be a whole number, got %g", ErrUnknownCriterion, kind, threshold)
	}
	return int(threshold), nil
}

// MaintenancePolicy is the logical OR of its criteria. No criteria means never due.
type MaintenancePolicy struct {
	criteria []MaintenanceCriterion
}

func NewMaintenancePolicy(criteria ...MaintenanceCriterion) MaintenancePolicy {
	return MaintenancePolicy{criteria: append([]MaintenanceCriterion(nil), criteria...)}
}

func (p MaintenancePolicy) IsDue(today time.Time, odometer float64, record MaintenanceRecord) bool {
	for _, c := range p.criteria {
		if c.IsDue(today, odometer, record) {
			return true
		}
	}
	return false
}

// DueReasons lists every criterion that fires, in configuration order.
func (p MaintenancePolicy) DueReasons(today time.Time, odometer float64, record MaintenanceRecord) []string {
	var reasons []string
	for _, c := range p.criteria {
		if c.IsDue(today, odometer, record) {
			reasons = append(reasons, c.String())
		}
	}
	return reasons
}

func (p MaintenancePolicy) Criteria() []MaintenanceCriterion {
	return append([]MaintenanceCriterion(nil), p.criteria...)
}
