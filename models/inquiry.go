package models

import "time"

// Inquiry is a guest asking about a completed date selection. It is not a
// reservation: the admin follows up over WhatsApp and blocks the dates by hand.
type Inquiry struct {
	PropertyID string    `json:"propertyId"`
	From       DateOnly  `json:"from"`
	To         DateOnly  `json:"to"`
	GuestName  string    `json:"guestName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
