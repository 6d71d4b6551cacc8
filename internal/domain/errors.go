package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange        = errors.New("invalid date range")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrRentalNotActive     = errors.New("rental is not active")
	ErrInvalidOdometer     = errors.New("invalid odometer reading")
	ErrRentalNotFinished   = errors.New("rental is not finished")
	ErrVehicleUnavailable  = errors.New("vehicle is not available for the requested range")
	ErrPeriodRequired      = errors.New("a period is required")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrReservationNotValid = errors.New("reservation cannot be confirmed")
	ErrUnknownCategory     = errors.New("unknown vehicle category")
	ErrUnknownCriterion    = errors.New("unknown maintenance criterion")
)

// InvalidTransitionError names the state the vehicle was in and the action that was refused.
type InvalidTransitionError struct {
	State  VehicleState
	Action VehicleAction
	Plate  string
}

func (e *InvalidTransitionError) Error() string {
	if e.Plate != "" {
		return fmt.Sprintf("cannot %s vehicle %s while %s", e.Action, e.Plate, e.State)
	}
	return fmt.Sprintf("cannot %s while %s", e.Action, e.State)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
