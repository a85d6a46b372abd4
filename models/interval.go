package models

import "errors"

// ErrInvalidInterval is returned when an interval's start falls after its end.
var ErrInvalidInterval = errors.New("booked interval: from is after to")

// BookedInterval is a closed, inclusive range of unavailable days. The set of
// intervals held for a property may be adjacent or overlapping; nothing in the
// engine assumes pre-merged ranges.
type BookedInterval struct {
	From DateOnly `json:"from"`
	To   DateOnly `json:"to"`
}

// NewBookedInterval builds an interval, rejecting inverted ranges with
// ErrInvalidInterval.
func NewBookedInterval(from, to DateOnly) (BookedInterval, error) {
	if from.After(to) {
		return BookedInterval{}, ErrInvalidInterval
	}
	return BookedInterval{From: from, To: to}, nil
}

// Valid reports whether the interval satisfies From <= To.
func (i BookedInterval) Valid() bool { return !i.From.After(i.To) }

// Contains reports whether d falls inside the interval, both ends inclusive.
func (i BookedInterval) Contains(d DateOnly) bool {
	return !d.Before(i.From) && !d.After(i.To)
}

// Overlaps reports whether the closed range [from, to] intersects the
// interval on at least one day.
func (i BookedInterval) Overlaps(from, to DateOnly) bool {
	return !from.After(i.To) && !to.Before(i.From)
}
