package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf returns the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Time returns midnight of the date in loc
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDay parses a yyyy-mm-dd string into midnight UTC
func ParseDay(dateStr string) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(time.UTC), nil
}

// ParseInstant accepts either an RFC 3339 timestamp or a plain yyyy-mm-dd date
func ParseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return ParseDay(value)
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// StartOfDay truncates t to midnight in t's own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether b falls on the same calendar day as a, read in a's location
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}

// MonthDifference counts whole calendar months from -> to, ignoring the day of month.
// 2024-01-31 -> 2024-02-01 is one month.
func MonthDifference(from, to time.Time) int {
	to = to.In(from.Location())
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
