package domain

import (
	"fmt"
	"math"
	"strings"
)

type Category string

const (
	CategoryCompact Category = "compact"
	CategorySedan   Category = "sedan"
	CategorySUV     Category = "suv"
)

// AllCategories returns every vehicle category.
func AllCategories() []Category {
	return []Category{CategoryCompact, CategorySedan, CategorySUV}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryCompact, CategorySedan, CategorySUV:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory is case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Tariff computes the base cost of a rental before the seasonal factor.
// The set of implementations is closed: CompactTariff, SedanTariff and SUVTariff.
type Tariff interface {
	Category() Category
	Cost(days int, kmDriven float64) float64
	tariff()
}

// CompactTariff grants a free allowance that scales with the number of days.
type CompactTariff struct {
	BaseDailyRate float64 `json:"base_daily_rate" yaml:"base_daily_rate"`
	FreeKmPerDay  float64 `json:"free_km_per_day" yaml:"free_km_per_day"`
	OverageRate   float64 `json:"overage_rate" yaml:"overage_rate"`
}

func DefaultCompactTariff() CompactTariff {
	return CompactTariff{BaseDailyRate: 30, FreeKmPerDay: 100, OverageRate: 0.15}
}

func (t CompactTariff) Category() Category { return CategoryCompact }

func (t CompactTariff) Cost(days int, kmDriven float64) float64 {
	d := float64(days)
	excess := math.Max(0, kmDriven-t.FreeKmPerDay*d)
	return t.BaseDailyRate*d + excess*t.OverageRate
}

func (CompactTariff) tariff() {}

// SedanTariff charges every kilometre.
type SedanTariff struct {
	BaseDailyRate float64 `json:"base_daily_rate" yaml:"base_daily_rate"`
	PerKmRate     float64 `json:"per_km_rate" yaml:"per_km_rate"`
}

func DefaultSedanTariff() SedanTariff {
	return SedanTariff{BaseDailyRate: 50, PerKmRate: 0.20}
}

func (t SedanTariff) Category() Category { return CategorySedan }

// Cost does not clamp negative kilometres.
func (t SedanTariff) Cost(days int, kmDriven float64) float64 {
	return t.BaseDailyRate*float64(days) + kmDriven*t.PerKmRate
}

func (SedanTariff) tariff() {}

// SUVTariff adds daily insurance and a flat free allowance that does not scale with days.
type SUVTariff struct {
	BaseDailyRate      float64 `json:"base_daily_rate" yaml:"base_daily_rate"`
	InsuranceDailyRate float64 `json:"insurance_daily_rate" yaml:"insurance_daily_rate"`
	FixedFreeKmLimit   float64 `json:"fixed_free_km_limit" yaml:"fixed_free_km_limit"`
	OverageRate        float64 `json:"overage_rate" yaml:"overage_rate"`
}

func DefaultSUVTariff() SUVTariff {
	return SUVTariff{BaseDailyRate: 80, InsuranceDailyRate: 15, FixedFreeKmLimit: 500, OverageRate: 0.25}
}

func (t SUVTariff) Category() Category { return CategorySUV }

func (t SUVTariff) Cost(days int, kmDriven float64) float64 {
	excess := math.Max(0, kmDriven-t.FixedFreeKmLimit)
	return (t.BaseDailyRate+t.InsuranceDailyRate)*float64(days) + excess*t.OverageRate
}

func (SUVTariff) tariff() {}

// TariffFor returns the default tariff of a category.
func TariffFor(c Category) (Tariff, error) {
	switch c {
	case CategoryCompact:
		return DefaultCompactTariff(), nil
	case CategorySedan:
		return DefaultSedanTariff(), nil
	case CategorySUV:
		return DefaultSUVTariff(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
}
