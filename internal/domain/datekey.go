package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for malformed date input.
var ErrInvalidDate = errors.New("invalid date")

const (
	keyLayout     = "2006-01-02"
	displayLayout = "01/02/2006"
	shortLayout   = "01/02/06"
)

// DateKey is a normalized YYYY-MM-DD calendar date with no time-of-day and no
// timezone. The normalized form sorts lexicographically in date order, so
// DateKeys compare directly with < and >=.
type DateKey string

type DateUnit string

const (
	Days   DateUnit = "days"
	Weeks  DateUnit = "weeks"
	Months DateUnit = "months"
	Years  DateUnit = "years"
)

// NewDateKey returns the DateKey for t's calendar date in t's location.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(keyLayout))
}

// Today returns the current date in the given location.
func Today(loc *time.Location) DateKey {
	if loc == nil {
		loc = time.Local
	}
	return NewDateKey(time.Now().In(loc))
}

// ParseDateKey parses a normalized YYYY-MM-DD string.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(keyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDateKey(t), nil
}

// ParseDisplay parses user-facing MM/DD/YYYY input into a DateKey. Malformed
// or out-of-range input yields ErrInvalidDate.
func ParseDisplay(s string) (DateKey, error) {
	t, err := time.Parse(displayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDateKey(t), nil
}

// Time returns the date at midnight UTC. Use At for wall-clock times.
func (d DateKey) Time() time.Time {
	t, _ := time.Parse(keyLayout, string(d))
	return t
}

// At returns the date at the given local hour in loc.
func (d DateKey) At(hour int, loc *time.Location) time.Time {
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, loc)
}

// Display formats the date as MM/DD/YYYY.
func (d DateKey) Display() string {
	return d.Time().Format(displayLayout)
}

// DisplayShort formats the date as MM/DD/YY.
func (d DateKey) DisplayShort() string {
	return d.Time().Format(shortLayout)
}

func (d DateKey) SameOrAfter(other DateKey) bool {
	return d >= other
}

func (d DateKey) Before(other DateKey) bool {
	return d < other
}

// Add advances the date by n units with calendar semantics: adding months or
// years preserves the day-of-month where valid and otherwise clamps to the
// last day of the target month, so Jan 31 + 1 month lands on Feb 28/29
// rather than rolling over into March.
func (d DateKey) Add(unit DateUnit, n int) DateKey {
	t := d.Time()
	switch unit {
	case Days:
		return NewDateKey(t.AddDate(0, 0, n))
	case Weeks:
		return NewDateKey(t.AddDate(0, 0, 7*n))
	case Months:
		return NewDateKey(addMonthsClamped(t, n))
	case Years:
		return NewDateKey(addMonthsClamped(t, 12*n))
	}
	return d
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, day := t.Date()
	// Normalize via the first of the target month, then clamp the day.
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
