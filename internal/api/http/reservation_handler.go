package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
}

func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	start, err := parseDay(req.Start)
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDay(req.End)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.reservationSvc.CreatePending(r.Context(), req.CustomerID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// List accepts ?status=confirmed to restrict to confirmed reservations.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		reservations []*domain.Reservation
		err          error
	)
	switch status := strings.ToUpper(r.URL.Query().Get("status")); status {
	case "":
		reservations, err = h.reservationSvc.List(r.Context())
	case string(domain.ReservationStatusConfirmed):
		reservations, err = h.reservationSvc.ListConfirmed(r.Context())
	default:
		err = fmt.Errorf("%w: unsupported status filter %q", service.ErrInvalidArgument, status)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reservations))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservationSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Confirm assigns either the given plate or the first free vehicle of the given category.
// A vehicle that is not free cancels the reservation and answers 409.
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if (req.Plate == "") == (req.Category == "") {
		writeErrorCode(w, http.StatusBadRequest, CodeBadRequest, "exactly one of plate or category is required")
		return
	}

	id := mux.Vars(r)["id"]
	var (
		res *domain.Reservation
		err error
	)
	if req.Plate != "" {
		res, err = h.reservationSvc.Confirm(r.Context(), id, req.Plate)
	} else {
		category, perr := domain.ParseCategory(req.Category)
		if perr != nil {
			writeError(w, r, perr)
			return
		}
		res, err = h.reservationSvc.ConfirmByCategory(r.Context(), id, category)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservationSvc.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
