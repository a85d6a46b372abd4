// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"refugio/models"
)

func (r *mongoBookingRepo) GetByProperty(ctx context.Context, propertyID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	// Day-granular bounds only; time-of-day never reaches the collection.
	booking.StartDate = models.NewDateOnly(booking.StartDate).Time()
	booking.EndDate = models.NewDateOnly(booking.EndDate).Time()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return "", err
	}
	return booking.ID, nil
}

func (r *mongoBookingRepo) Delete(ctx context.Context, propertyID, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": bookingID, "propertyId": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
