// File: database/repository/booking/watch.go
package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"refugio/models"
)

// Subscribe streams full booking-set snapshots for one property. The first
// delivery is the current set; afterwards every change-stream event triggers
// a fresh query, so each delivery fully replaces the one before it. The
// returned func cancels the stream and is safe to call more than once.
func (r *mongoBookingRepo) Subscribe(ctx context.Context, propertyID string, onSnapshot func([]models.Booking), onError func(error)) (func(), error) {
	// Delete events carry no fullDocument, so the stream watches every write
	// on the collection and the snapshot is re-fetched per property.
	matchStage := bson.D{{Key: "$match", Value: bson.M{
		"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
	}}}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.coll.Watch(ctx, mongo.Pipeline{matchStage}, opts)
	if err != nil {
		return nil, err
	}

	initial, err := r.GetByProperty(ctx, propertyID)
	if err != nil {
		stream.Close(context.Background())
		return nil, err
	}

	// The stream outlives the caller's setup context.
	streamCtx, cancel := context.WithCancel(context.Background())

	go func() {
		defer stream.Close(context.Background())
		onSnapshot(initial)
		for stream.Next(streamCtx) {
			snapshot, err := r.GetByProperty(streamCtx, propertyID)
			if err != nil {
				if streamCtx.Err() == nil {
					onError(err)
				}
				continue
			}
			onSnapshot(snapshot)
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			onError(err)
		}
	}()

	return cancel, nil
}
