package models

import "time"

// Pricing holds the nightly price configured for a property.
type Pricing struct {
	PropertyID  string    `bson:"propertyId" json:"propertyId"`
	DailyPrice  float64   `bson:"dailyPrice" json:"dailyPrice"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// AdminDevice is the device that receives inquiry push notifications.
type AdminDevice struct {
	FCMToken  string    `bson:"fcmToken" json:"fcmToken"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
