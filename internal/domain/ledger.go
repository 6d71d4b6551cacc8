package domain

import "time"

// LedgerEntry is the audit record written once a rental is finished.
type LedgerEntry struct {
	ID         int64     `json:"id"`
	RentalID   string    `json:"rental_id"`
	Plate      string    `json:"plate"`
	CustomerID string    `json:"customer_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Days       int       `json:"days"`
	KmDriven   float64   `json:"km_driven"`
	Season     Season    `json:"season"`
	TotalCost  float64   `json:"total_cost"`
	FinishedOn time.Time `json:"finished_on"`
}

// NewLedgerEntry fails with ErrRentalNotFinished for an active rental.
func NewLedgerEntry(r *Rental, finishedOn time.Time) (*LedgerEntry, error) {
	breakdown, err := r.CostBreakdown()
	if err != nil {
		return nil, err
	}
	return &LedgerEntry{
		RentalID:   r.ID(),
		Plate:      r.Plate(),
		CustomerID: r.CustomerID(),
		StartDate:  r.Range().Start(),
		EndDate:    r.Range().End(),
		Days:       breakdown.Days,
		KmDriven:   breakdown.KmDriven,
		Season:     breakdown.Season,
		TotalCost:  breakdown.TotalCost,
		FinishedOn: finishedOn,
	}, nil
}
