package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
	now       clock
}

func NewRentalHandler(rentalSvc service.RentalService, now clock) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, now: now}
}

// StartToday runs the start sweep on demand. The optional date defaults to today.
func (h *RentalHandler) StartToday(w http.ResponseWriter, r *http.Request) {
	var req startRentalsRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}
	today, err := h.now.dayOr(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	started, err := h.rentalSvc.StartConfirmedToday(r.Context(), today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(started))
}

func (h *RentalHandler) Finish(w http.ResponseWriter, r *http.Request) {
	var req finishRentalRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	today, err := h.now.dayOr(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.rentalSvc.Finish(r.Context(), mux.Vars(r)["id"], *req.FinalOdometer, today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List accepts ?status=active.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rentals []*domain.Rental
		err     error
	)
	switch status := strings.ToUpper(r.URL.Query().Get("status")); status {
	case "":
		rentals, err = h.rentalSvc.List(r.Context())
	case string(domain.RentalStatusActive):
		rentals, err = h.rentalSvc.ListActive(r.Context())
	default:
		err = fmt.Errorf("%w: unsupported status filter %q", service.ErrInvalidArgument, status)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rentals))
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentalSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
