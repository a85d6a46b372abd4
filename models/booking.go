package models

import "time"

// Booking origin, stored on every bookings document.
const (
	BookingTypeAdmin = "admin"
	BookingTypeGuest = "guest"
)

// Booking is a stored unavailability record for one property. StartDate and
// EndDate form an inclusive, day-granular range; any time-of-day on either
// value is ignored when the record is turned into a BookedInterval.
type Booking struct {
	ID         string    `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	PropertyID string    `bson:"propertyId" json:"propertyId"` // Property the dates belong to
	StartDate  time.Time `bson:"startDate" json:"startDate"`   // First unavailable day (inclusive)
	EndDate    time.Time `bson:"endDate" json:"endDate"`       // Last unavailable day (inclusive)
	Type       string    `bson:"type" json:"type"`             // "admin" or "guest"
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Interval converts the stored dates into a validated BookedInterval. This is
// the single place raw store data becomes a typed interval; query paths never
// shape-check documents themselves.
func (b Booking) Interval() (BookedInterval, error) {
	return NewBookedInterval(NewDateOnly(b.StartDate), NewDateOnly(b.EndDate))
}
