package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
)

// Reservation asks for a vehicle over a range. The assigned vehicle is referenced by plate.
type Reservation struct {
	ID         string
	CustomerID string
	Range      DateRange
	CreatedOn  time.Time

	plate  string
	status ReservationStatus
}

func NewReservation(id, customerID string, rng DateRange, createdOn time.Time) *Reservation {
	return &Reservation{
		ID:         id,
		CustomerID: customerID,
		Range:      rng,
		CreatedOn:  createdOn,
		status:     ReservationStatusPending,
	}
}

func (r *Reservation) Status() ReservationStatus { return r.status }

func (r *Reservation) Clone() *Reservation {
	c := *r
	return &c
}

// Plate returns the assigned vehicle, if any.
func (r *Reservation) Plate() (string, bool) {
	return r.plate, r.plate != ""
}

// ConfirmWith blocks the range on v and assigns it. When v is not free for the range
// the reservation is cancelled, v is left untouched and ErrVehicleUnavailable is returned.
func (r *Reservation) ConfirmWith(v *Vehicle) error {
	if r.status != ReservationStatusPending {
		return fmt.Errorf("%w: reservation %s is %s", ErrReservationNotValid, r.ID, r.status)
	}
	if err := v.Block(r.Range); err != nil {
		r.cancel()
		return err
	}
	r.plate = v.Plate()
	r.status = ReservationStatusConfirmed
	return nil
}

// Cancel drops the vehicle. Releasing the blocked range is up to the caller, which owns the vehicle.
func (r *Reservation) Cancel() error {
	if r.status == ReservationStatusFulfilled {
		return fmt.Errorf("%w: reservation %s already fulfilled", ErrReservationNotValid, r.ID)
	}
	r.cancel()
	return nil
}

func (r *Reservation) cancel() {
	r.status = ReservationStatusCancelled
	r.plate = ""
}

func (r *Reservation) MarkFulfilled() error {
	if r.status != ReservationStatusConfirmed {
		return fmt.Errorf("%w: reservation %s is %s", ErrReservationNotValid, r.ID, r.status)
	}
	r.status = ReservationStatusFulfilled
	return nil
}

// CanStartRental is true only for a confirmed reservation holding a vehicle.
func (r *Reservation) CanStartRental() bool {
	return r.status == ReservationStatusConfirmed && r.plate != ""
}

// StartsOn compares calendar days only.
func (r *Reservation) StartsOn(today time.Time) bool {
	return r.Range.SameDayAsStart(today)
}

func (r *Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string            `json:"id"`
		CustomerID string            `json:"customer_id"`
		Range      DateRange         `json:"range"`
		Plate      string            `json:"plate,omitempty"`
		Status     ReservationStatus `json:"status"`
		CreatedOn  time.Time         `json:"created_on"`
	}{r.ID, r.CustomerID, r.Range, r.plate, r.status, r.CreatedOn})
}
