package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"rentacar-backend/internal/utils"
)

const day = 24 * time.Hour

// DateRange is an immutable half-open interval [start, end).
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange requires start strictly before end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return DateRange{start: start, end: end}, nil
}

// MustDateRange panics on an invalid range. Intended for fixed literals and tests.
func MustDateRange(start, end time.Time) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// OneDayFrom returns [start, start+24h).
func OneDayFrom(start time.Time) DateRange {
	return DateRange{start: start, end: start.Add(day)}
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Overlaps reports whether the ranges share any instant. Ranges that only touch do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Equal compares both bounds at millisecond precision.
func (r DateRange) Equal(other DateRange) bool {
	return r.start.UnixMilli() == other.start.UnixMilli() && r.end.UnixMilli() == other.end.UnixMilli()
}

// SameDayAsStart compares calendar days, both sides normalised to midnight.
func (r DateRange) SameDayAsStart(t time.Time) bool {
	return utils.SameDay(r.start, t)
}

// Contains reports whether t falls inside [start, end).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// Days is the number of started days in the range, at least 1.
func (r DateRange) Days() int {
	return int(math.Ceil(float64(r.end.Sub(r.start)) / float64(day)))
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

type dateRangeJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{Start: r.start, End: r.end})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewDateRange(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// IsFree reports whether requested overlaps none of the blocked ranges.
func IsFree(requested DateRange, blocked []DateRange) bool {
	for _, b := range blocked {
		if b.Overlaps(requested) {
			return false
		}
	}
	return true
}
