// Package model provides value objects for date handling and parameter validation.
package model

import (
	"fmt"
	"time"
)

// dateLayout is the canonical wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date represents a calendar date without a time component.
// All arithmetic is timezone-free: dates are stored at midnight UTC so that
// comparisons and day offsets are exactly reproducible.
type Date struct {
	t time.Time
}

// NewDate creates a date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar date in the local timezone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, NewValidationError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD format", s))
	}
	return DateOf(t), nil
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Format formats the date with the given layout.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Year returns the year component.
func (d Date) Year() int {
	return d.t.Year()
}

// Month returns the month component.
func (d Date) Month() time.Month {
	return d.t.Month()
}

// Day returns the day-of-month component.
func (d Date) Day() int {
	return d.t.Day()
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.t.Year(), d.t.Month(), 1)
}

// LastOfMonth returns the last day of d's month, respecting month
// length and leap years.
func (d Date) LastOfMonth() Date {
	return NewDate(d.t.Year(), d.t.Month()+1, 1).AddDays(-1)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return NewValidationError("invalid date: expected a JSON string")
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
