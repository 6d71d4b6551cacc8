package domain

import (
	"encoding/json"
	"fmt"
)

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusFinished RentalStatus = "FINISHED"
)

// Rental is created when a confirmed reservation starts. Identity fields are fixed;
// Finish is the only mutator.
type Rental struct {
	id            string
	reservationID string
	plate         string
	customerID    string
	rng           DateRange
	startOdometer float64
	// Tariff snapshot captured at start so cost never depends on later fleet edits.
	tariff Tariff

	status        RentalStatus
	finalOdometer float64
	cost          *RentalCostBreakdown
}

// NewRental copies customer and range from the reservation and snapshots the vehicle's
// odometer and tariff.
func NewRental(id string, reservation *Reservation, vehicle *Vehicle) *Rental {
	return &Rental{
		id:            id,
		reservationID: reservation.ID,
		plate:         vehicle.Plate(),
		customerID:    reservation.CustomerID,
		rng:           reservation.Range,
		startOdometer: vehicle.Odometer(),
		tariff:        vehicle.Tariff(),
		status:        RentalStatusActive,
	}
}

func (r *Rental) ID() string             { return r.id }
func (r *Rental) ReservationID() string  { return r.reservationID }
func (r *Rental) Plate() string          { return r.plate }
func (r *Rental) CustomerID() string     { return r.customerID }
func (r *Rental) Range() DateRange       { return r.rng }
func (r *Rental) StartOdometer() float64 { return r.startOdometer }
func (r *Rental) Tariff() Tariff         { return r.tariff }
func (r *Rental) Status() RentalStatus   { return r.status }
func (r *Rental) IsFinished() bool       { return r.status == RentalStatusFinished }

func (r *Rental) Clone() *Rental {
	c := *r
	if r.cost != nil {
		cost := *r.cost
		c.cost = &cost
	}
	return &c
}

// ValidateFinish checks the preconditions of Finish without mutating anything.
func (r *Rental) ValidateFinish(finalOdometer float64) error {
	if r.status != RentalStatusActive {
		return fmt.Errorf("%w: rental %s is %s", ErrRentalNotActive, r.id, r.status)
	}
	if finalOdometer < r.startOdometer {
		return fmt.Errorf("%w: final %g is below starting %g", ErrInvalidOdometer, finalOdometer, r.startOdometer)
	}
	return nil
}

// Finish records the final odometer, prices the rental and marks it finished.
func (r *Rental) Finish(finalOdometer float64) error {
	if err := r.ValidateFinish(finalOdometer); err != nil {
		return err
	}
	breakdown := CalculateRentalCost(r.rng, r.tariff, finalOdometer-r.startOdometer)
	r.finalOdometer = finalOdometer
	r.cost = &breakdown
	r.status = RentalStatusFinished
	return nil
}

func (r *Rental) FinalOdometer() (float64, error) {
	if !r.IsFinished() {
		return 0, fmt.Errorf("%w: rental %s", ErrRentalNotFinished, r.id)
	}
	return r.finalOdometer, nil
}

func (r *Rental) KmDriven() (float64, error) {
	if !r.IsFinished() {
		return 0, fmt.Errorf("%w: rental %s", ErrRentalNotFinished, r.id)
	}
	return r.finalOdometer - r.startOdometer, nil
}

func (r *Rental) TotalCost() (float64, error) {
	if !r.IsFinished() {
		return 0, fmt.Errorf("%w: rental %s", ErrRentalNotFinished, r.id)
	}
	return r.cost.TotalCost, nil
}

func (r *Rental) CostBreakdown() (RentalCostBreakdown, error) {
	if !r.IsFinished() {
		return RentalCostBreakdown{}, fmt.Errorf("%w: rental %s", ErrRentalNotFinished, r.id)
	}
	return *r.cost, nil
}

func (r *Rental) MarshalJSON() ([]byte, error) {
	out := struct {
		ID            string               `json:"id"`
		ReservationID string               `json:"reservation_id"`
		Plate         string               `json:"plate"`
		CustomerID    string               `json:"customer_id"`
		Range         DateRange            `json:"range"`
		StartOdometer float64              `json:"start_odometer"`
		Status        RentalStatus         `json:"status"`
		FinalOdometer *float64             `json:"final_odometer,omitempty"`
		Cost          *RentalCostBreakdown `json:"cost,omitempty"`
	}{
		ID:            r.id,
		ReservationID: r.reservationID,
		Plate:         r.plate,
		CustomerID:    r.customerID,
		Range:         r.rng,
		StartOdometer: r.startOdometer,
		Status:        r.status,
		Cost:          r.cost,
	}
	if r.IsFinished() {
		final := r.finalOdometer
		out.FinalOdometer = &final
	}
	return json.Marshal(out)
}
