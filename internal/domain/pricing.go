package domain

import "time"

type Season string

const (
	SeasonHigh   Season = "high"
	SeasonMedium Season = "medium"
	SeasonLow    Season = "low"
)

// SeasonFor picks the season from the month of t: Dec-Feb high, May-Jun low, otherwise medium.
func SeasonFor(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonHigh
	case time.May, time.June:
		return SeasonLow
	default:
		return SeasonMedium
	}
}

// Factor is the multiplier applied to the base tariff cost.
func (s Season) Factor() float64 {
	switch s {
	case SeasonHigh:
		return 1.20
	case SeasonLow:
		return 0.90
	default:
		return 1.00
	}
}

func (s Season) Apply(baseCost float64) float64 {
	return baseCost * s.Factor()
}

// RentalCostBreakdown provides detailed cost breakdown
type RentalCostBreakdown struct {
	Days         int     `json:"days"`
	KmDriven     float64 `json:"km_driven"`
	BaseCost     float64 `json:"base_cost"`
	Season       Season  `json:"season"`
	SeasonFactor float64 `json:"season_factor"`
	TotalCost    float64 `json:"total_cost"`
}

// CalculateRentalCost runs the pricing pipeline: season of the range start times the tariff cost.
func CalculateRentalCost(rng DateRange, tariff Tariff, kmDriven float64) RentalCostBreakdown {
	days := rng.Days()
	base := tariff.Cost(days, kmDriven)
	season := SeasonFor(rng.Start())
	return RentalCostBreakdown{
		Days:         days,
		KmDriven:     kmDriven,
		BaseCost:     base,
		Season:       season,
		SeasonFactor: season.Factor(),
		TotalCost:    season.Apply(base),
	}
}
