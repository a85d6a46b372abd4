// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"refugio/database"
	"refugio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the storage contract for per-property bookings. The
// availability syncer consumes Subscribe; the admin service uses the write
// paths. Writes are last-write-wins at the storage layer.
type BookingRepository interface {
	GetByProperty(ctx context.Context, propertyID string) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) (string, error)
	Delete(ctx context.Context, propertyID, bookingID string) error
	Subscribe(ctx context.Context, propertyID string, onSnapshot func([]models.Booking), onError func(error)) (func(), error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs the MongoDB-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
