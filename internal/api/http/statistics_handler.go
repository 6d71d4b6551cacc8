package http

import (
	"net/http"

	"rentacar-backend/internal/service"
)

type StatisticsHandler struct {
	statsSvc  service.StatisticsService
	ledgerSvc service.LedgerService
}

func NewStatisticsHandler(statsSvc service.StatisticsService, ledgerSvc service.LedgerService) *StatisticsHandler {
	return &StatisticsHandler{statsSvc: statsSvc, ledgerSvc: ledgerSvc}
}

func (h *StatisticsHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	report, err := h.statsSvc.Occupancy(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type rentalFrequencyResponse struct {
	Most  service.RentalCount `json:"most_rented"`
	Least service.RentalCount `json:"least_rented"`
}

// RentalFrequency requires ?from=&to=.
func (h *StatisticsHandler) RentalFrequency(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	most, err := h.statsSvc.MostRented(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	least, err := h.statsSvc.LeastRented(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalFrequencyResponse{Most: most, Least: least})
}

type profitabilityResponse struct {
	Most  service.Profitability `json:"most_profitable"`
	Least service.Profitability `json:"least_profitable"`
}

func (h *StatisticsHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	most, err := h.statsSvc.MostProfitable(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	least, err := h.statsSvc.LeastProfitable(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profitabilityResponse{Most: most, Least: least})
}

type incomeResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Income float64 `json:"income"`
}

// Income reads the ledger of finished rentals for ?from=&to=.
func (h *StatisticsHandler) Income(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	income, err := h.ledgerSvc.Income(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incomeResponse{
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
		Income: income,
	})
}
