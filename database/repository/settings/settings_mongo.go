// File: database/repository/settings/settings_mongo.go
package settingsRepo

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"refugio/models"
)

const (
	pricingCachePrefix = "pricing:"
	pricingCacheTTL    = 5 * time.Minute
	adminDeviceDocID   = "adminDevice"
)

func (r *mongoSettingsRepo) GetPricing(ctx context.Context, propertyID string) (*models.Pricing, error) {
	if data, err := r.cache.Get(ctx, pricingCachePrefix+propertyID).Result(); err == nil {
		var cached models.Pricing
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return &cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pricing models.Pricing
	if err := r.coll.FindOne(ctx, bson.M{"_id": pricingDocID(propertyID)}).Decode(&pricing); err != nil {
		return nil, err
	}
	if data, err := json.Marshal(pricing); err == nil {
		r.cache.Set(ctx, pricingCachePrefix+propertyID, data, pricingCacheTTL)
	}
	return &pricing, nil
}

func (r *mongoSettingsRepo) SetPricing(ctx context.Context, propertyID string, dailyPrice float64) (*models.Pricing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pricing := models.Pricing{
		PropertyID:  propertyID,
		DailyPrice:  dailyPrice,
		LastUpdated: time.Now(),
	}
	doc := bson.M{
		"_id":         pricingDocID(propertyID),
		"propertyId":  pricing.PropertyID,
		"dailyPrice":  pricing.DailyPrice,
		"lastUpdated": pricing.LastUpdated,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": pricingDocID(propertyID)}, doc, opts); err != nil {
		return nil, err
	}
	r.cache.Del(ctx, pricingCachePrefix+propertyID)
	return &pricing, nil
}

func (r *mongoSettingsRepo) GetAdminDevice(ctx context.Context) (*models.AdminDevice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var device models.AdminDevice
	if err := r.coll.FindOne(ctx, bson.M{"_id": adminDeviceDocID}).Decode(&device); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *mongoSettingsRepo) SetAdminDevice(ctx context.Context, fcmToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{
		"_id":       adminDeviceDocID,
		"fcmToken":  fcmToken,
		"updatedAt": time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": adminDeviceDocID}, doc, opts)
	return err
}

func pricingDocID(propertyID string) string { return "pricing:" + propertyID }
