// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"refugio/database"
	"refugio/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsRepository stores per-property pricing plus the device that gets
// inquiry push notifications.
type SettingsRepository interface {
	GetPricing(ctx context.Context, propertyID string) (*models.Pricing, error)
	SetPricing(ctx context.Context, propertyID string, dailyPrice float64) (*models.Pricing, error)
	GetAdminDevice(ctx context.Context) (*models.AdminDevice, error)
	SetAdminDevice(ctx context.Context, fcmToken string) error
}

type mongoSettingsRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

// NewMongoSettingsRepo constructs the settings repository. Pricing reads are
// cached in redis with a short TTL.
func NewMongoSettingsRepo(cache *redis.Client) SettingsRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoSettingsRepo{coll: db.Collection("settings"), cache: cache}
}
