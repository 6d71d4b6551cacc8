package http

import (
	"fmt"
	"net/http"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/utils"
)

// Dates travel as yyyy-mm-dd and are read as midnight UTC.

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type addVehicleRequest struct {
	Plate    string  `json:"plate" validate:"required,plate"`
	Category string  `json:"category" validate:"required,category"`
	Odometer float64 `json:"odometer" validate:"gte=0"`
}

type odometerRequest struct {
	Odometer *float64 `json:"odometer" validate:"required,gte=0"`
}

type releaseRequest struct {
	Odometer *float64 `json:"odometer" validate:"required,gte=0"`
	Cost     *float64 `json:"cost" validate:"required,gte=0"`
	Date     string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type quoteRequest struct {
	Category string  `json:"category" validate:"required,category"`
	Start    string  `json:"start" validate:"required,datetime=2006-01-02"`
	End      string  `json:"end" validate:"required,datetime=2006-01-02"`
	KmDriven float64 `json:"km_driven" validate:"gte=0"`
}

type registerCustomerRequest struct {
	LastName       string `json:"last_name"`
	FirstName      string `json:"first_name"`
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

type createReservationRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Start      string `json:"start" validate:"required,datetime=2006-01-02"`
	End        string `json:"end" validate:"required,datetime=2006-01-02"`
}

// Exactly one of plate or category selects the vehicle.
type confirmReservationRequest struct {
	Plate    string `json:"plate" validate:"omitempty,plate"`
	Category string `json:"category" validate:"omitempty,category"`
}

type startRentalsRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type finishRentalRequest struct {
	FinalOdometer *float64 `json:"final_odometer" validate:"required,gte=0"`
	Date          string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type clock func() time.Time

// dayOr parses value, falling back to the current UTC day when it is empty.
func (c clock) dayOr(value string) (time.Time, error) {
	if value == "" {
		return utils.StartOfDay(c().UTC()), nil
	}
	return parseDay(value)
}

func parseDay(value string) (time.Time, error) {
	t, err := utils.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", service.ErrInvalidArgument, value, err)
	}
	return t, nil
}

func parseRange(start, end string) (domain.DateRange, error) {
	from, err := parseDay(start)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := parseDay(end)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.NewDateRange(from, to)
}

// periodFromQuery reads ?from=&to=. A missing bound yields a nil period.
func periodFromQuery(r *http.Request) (*domain.DateRange, error) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		return nil, nil
	}
	rng, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return &rng, nil
}
