package models

import (
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly is a calendar date with no time-of-day component. Two values are
// equal iff they share the same year, month and day; all comparisons in the
// availability engine happen at day granularity.
type DateOnly struct {
	t time.Time
}

// NewDateOnly normalizes t to its calendar date, discarding the time-of-day
// and timezone components.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a date in "2006-01-02" form.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOnly{t: t}, nil
}

// TomorrowOf returns the first selectable day relative to the given wall-clock
// instant: the day after its calendar date.
func TomorrowOf(now time.Time) DateOnly {
	return NewDateOnly(now).AddDays(1)
}

func (d DateOnly) IsZero() bool           { return d.t.IsZero() }
func (d DateOnly) Before(o DateOnly) bool { return d.t.Before(o.t) }
func (d DateOnly) After(o DateOnly) bool  { return d.t.After(o.t) }
func (d DateOnly) Equal(o DateOnly) bool  { return d.t.Equal(o.t) }
func (d DateOnly) AddDays(n int) DateOnly { return DateOnly{t: d.t.AddDate(0, 0, n)} }

// Next returns the following calendar day.
func (d DateOnly) Next() DateOnly { return d.AddDays(1) }

// Time exposes the date as a UTC-midnight instant for storage.
func (d DateOnly) Time() time.Time { return d.t }

func (d DateOnly) String() string { return d.t.Format(dateOnlyLayout) }

// MarshalJSON encodes the date as "2006-01-02".
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "2006-01-02" or null.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = DateOnly{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDateOnly(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
