package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used for aggregation.
const DateLayout = "2006-01-02"

// MonthLayout identifies a calendar month (YYYY-MM).
const MonthLayout = "2006-01"

// DateOf returns the calendar-day key of t in loc.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// ValidateDate checks that s is a YYYY-MM-DD date key.
func ValidateDate(s string) error {
	if s == "" {
		return NewValidationError("date is required")
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return NewValidationError("date %q must use YYYY-MM-DD format", s)
	}
	return nil
}

// DatesInRange returns every date key from `from` to `to`, both inclusive.
func DatesInRange(from, to string) ([]string, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil, NewValidationError("from date %q must use YYYY-MM-DD format", from)
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return nil, NewValidationError("to date %q must use YYYY-MM-DD format", to)
	}
	if end.Before(start) {
		return nil, NewValidationError("range end %s is before start %s", to, from)
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// MonthRange returns the first and last date keys of a YYYY-MM month.
func MonthRange(month string) (from, to string, err error) {
	first, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", NewValidationError("month %q must use YYYY-MM format", month)
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout), nil
}

// DayBounds returns the [start, end) instants of a date key in loc.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return start, start.AddDate(0, 0, 1), nil
}
