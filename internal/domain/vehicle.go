package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Vehicle exclusively owns its blocked ranges, maintenance record and current state.
// Collaborators change them only through the methods below.
type Vehicle struct {
	plate    string
	category Category
	tariff   Tariff
	odometer float64

	blocked             []DateRange
	record              MaintenanceRecord
	state               VehicleState
	maintenanceRequired bool
	maintenanceHold     *DateRange
}

// NewVehicle creates an available vehicle priced with its category's default tariff.
func NewVehicle(plate string, category Category, odometer float64) (*Vehicle, error) {
	tariff, err := TariffFor(category)
	if err != nil {
		return nil, err
	}
	return NewVehicleWithTariff(plate, tariff, odometer)
}

// NewVehicleWithTariff takes the category from the tariff variant.
func NewVehicleWithTariff(plate string, tariff Tariff, odometer float64) (*Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("plate is required")
	}
	if tariff == nil {
		return nil, fmt.Errorf("tariff is required")
	}
	if odometer < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidOdometer, odometer)
	}
	return &Vehicle{
		plate:    plate,
		category: tariff.Category(),
		tariff:   tariff,
		odometer: odometer,
		state:    VehicleStateAvailable,
	}, nil
}

func (v *Vehicle) Plate() string                        { return v.plate }
func (v *Vehicle) Category() Category                   { return v.category }
func (v *Vehicle) Tariff() Tariff                       { return v.tariff }
func (v *Vehicle) Odometer() float64                    { return v.odometer }
func (v *Vehicle) State() VehicleState                  { return v.state }
func (v *Vehicle) MaintenanceRequired() bool            { return v.maintenanceRequired }
func (v *Vehicle) MaintenanceRecord() MaintenanceRecord { return v.record.clone() }

// MaintenanceHold is the automatic one-day block placed when the vehicle went into maintenance.
func (v *Vehicle) MaintenanceHold() (DateRange, bool) {
	if v.maintenanceHold == nil {
		return DateRange{}, false
	}
	return *v.maintenanceHold, true
}

// BlockedRanges returns a copy of the blocked ranges.
func (v *Vehicle) BlockedRanges() []DateRange {
	return append([]DateRange(nil), v.blocked...)
}

// Clone returns a deep copy that shares nothing mutable with v.
func (v *Vehicle) Clone() *Vehicle {
	c := *v
	c.blocked = v.BlockedRanges()
	c.record = v.record.clone()
	if v.maintenanceHold != nil {
		hold := *v.maintenanceHold
		c.maintenanceHold = &hold
	}
	return &c
}

// SetOdometer overwrites the reading. Used by fleet corrections, not by rentals.
func (v *Vehicle) SetOdometer(km float64) error {
	if km < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidOdometer, km)
	}
	v.odometer = km
	return nil
}

func (v *Vehicle) IsAvailable(requested DateRange) bool {
	return IsFree(requested, v.blocked)
}

// Block adds a range. A range overlapping an existing block is refused so that
// the blocked set never holds two overlapping ranges.
func (v *Vehicle) Block(rng DateRange) error {
	if !v.IsAvailable(rng) {
		return fmt.Errorf("%w: %s on %s", ErrVehicleUnavailable, v.plate, rng)
	}
	v.blocked = append(v.blocked, rng)
	return nil
}

// Unblock removes every block equal to rng. Unknown ranges are ignored.
func (v *Vehicle) Unblock(rng DateRange) {
	kept := v.blocked[:0]
	for _, b := range v.blocked {
		if !b.Equal(rng) {
			kept = append(kept, b)
		}
	}
	v.blocked = kept
}

// CheckTransition reports whether action is legal right now without changing anything.
func (v *Vehicle) CheckTransition(action VehicleAction) error {
	if !v.state.Allows(action) {
		return &InvalidTransitionError{State: v.state, Action: action, Plate: v.plate}
	}
	return nil
}

// ApplyTransition replaces the current state. Finishing a rental goes to maintenance
// when the last recorded rental flagged it.
func (v *Vehicle) ApplyTransition(action VehicleAction) (VehicleState, error) {
	next, err := Transition(v.state, action, v.maintenanceRequired)
	if err != nil {
		var ite *InvalidTransitionError
		if errors.As(err, &ite) {
			ite.Plate = v.plate
		}
		return v.state, err
	}
	v.state = next
	return next, nil
}

// RecordRentalFinished commits the bookkeeping of a returned rental. When maintenance is due
// a one-day hold starting today is blocked, unless it would overlap an existing block.
func (v *Vehicle) RecordRentalFinished(odometer float64, maintenanceDue bool, today time.Time) {
	v.odometer = odometer
	v.record.RegisterRentalCompleted()
	v.maintenanceRequired = maintenanceDue
	if !maintenanceDue {
		return
	}
	hold := OneDayFrom(today)
	if err := v.Block(hold); err == nil {
		v.maintenanceHold = &hold
	}
}

// RegisterService records a completed service and lifts the maintenance hold.
func (v *Vehicle) RegisterService(date time.Time, odometer, cost float64) {
	v.record.RegisterService(date, odometer, cost)
	v.odometer = odometer
	v.maintenanceRequired = false
	if v.maintenanceHold != nil {
		v.Unblock(*v.maintenanceHold)
		v.maintenanceHold = nil
	}
}

func (v *Vehicle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Plate               string            `json:"plate"`
		Category            Category          `json:"category"`
		Tariff              Tariff            `json:"tariff"`
		Odometer            float64           `json:"odometer"`
		State               VehicleState      `json:"state"`
		MaintenanceRequired bool              `json:"maintenance_required"`
		BlockedRanges       []DateRange       `json:"blocked_ranges"`
		Maintenance         MaintenanceRecord `json:"maintenance"`
	}{
		Plate:               v.plate,
		Category:            v.category,
		Tariff:              v.tariff,
		Odometer:            v.odometer,
		State:               v.state,
		MaintenanceRequired: v.maintenanceRequired,
		BlockedRanges:       v.BlockedRanges(),
		Maintenance:         v.record,
	})
}
