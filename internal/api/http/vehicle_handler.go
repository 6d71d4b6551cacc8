package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

type VehicleHandler struct {
	fleetSvc  service.FleetService
	ledgerSvc service.LedgerService
	now       clock
}

func NewVehicleHandler(fleetSvc service.FleetService, ledgerSvc service.LedgerService, now clock) *VehicleHandler {
	return &VehicleHandler{fleetSvc: fleetSvc, ledgerSvc: ledgerSvc, now: now}
}

// List accepts optional ?category= and ?state= filters.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		vehicles []*domain.Vehicle
		err      error
	)
	if c := r.URL.Query().Get("category"); c != "" {
		category, perr := domain.ParseCategory(c)
		if perr != nil {
			writeError(w, r, perr)
			return
		}
		vehicles, err = h.fleetSvc.ListByCategory(r.Context(), category)
	} else {
		vehicles, err = h.fleetSvc.ListVehicles(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if state := strings.ToUpper(r.URL.Query().Get("state")); state != "" {
		filtered := make([]*domain.Vehicle, 0, len(vehicles))
		for _, v := range vehicles {
			if string(v.State()) == state {
				filtered = append(filtered, v)
			}
		}
		vehicles = filtered
	}
	writeJSON(w, http.StatusOK, nonNil(vehicles))
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addVehicleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.fleetSvc.AddVehicle(r.Context(), req.Plate, category, req.Odometer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.fleetSvc.GetVehicle(r.Context(), mux.Vars(r)["plate"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) UpdateOdometer(w http.ResponseWriter, r *http.Request) {
	var req odometerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.fleetSvc.UpdateOdometer(r.Context(), mux.Vars(r)["plate"], *req.Odometer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Release registers the completed service and returns the vehicle to the available pool.
func (h *VehicleHandler) Release(w http.ResponseWriter, r *http.Request) {
	var req releaseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	today, err := h.now.dayOr(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.fleetSvc.ReleaseFromMaintenance(r.Context(), mux.Vars(r)["plate"], *req.Odometer, *req.Cost, today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	v, err := h.fleetSvc.GetVehicle(r.Context(), mux.Vars(r)["plate"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.ledgerSvc.History(r.Context(), v.Plate())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Plate     string `json:"plate,omitempty"`
}

// Availability answers ?start=&end= with either ?plate= or ?category=.
func (h *VehicleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := parseRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if plate := q.Get("plate"); plate != "" {
		ok, err := h.fleetSvc.IsAvailable(r.Context(), plate, rng)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp := availabilityResponse{Available: ok}
		if ok {
			resp.Plate = strings.ToUpper(strings.TrimSpace(plate))
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	category, err := domain.ParseCategory(q.Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.fleetSvc.FindAvailable(r.Context(), category, rng)
	if errors.Is(err, domain.ErrVehicleUnavailable) {
		writeJSON(w, http.StatusOK, availabilityResponse{Available: false})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Available: true, Plate: v.Plate()})
}

func (h *VehicleHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rng, err := parseRange(req.Start, req.End)
	if err != nil {
		writeError(w, r, err)
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	quote, err := h.fleetSvc.Quote(r.Context(), category, rng, req.KmDriven)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
