package admin

import (
	"context"
	"errors"
	"time"

	"refugio/config"
	bookingRepo "refugio/database/repository/booking"
	settingsRepo "refugio/database/repository/settings"
	"refugio/models"
	"refugio/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminSessionTTL = 12 * time.Hour

// DefaultAdminService is the production implementation of Service.
type DefaultAdminService struct {
	Bookings  bookingRepo.BookingRepository
	Settings  settingsRepo.SettingsRepository
	AuthCache *redis.Client
}

// Authenticate checks the configured panel account and mints a session token.
// The token's hash is cached so it can be revoked before expiry.
func (s *DefaultAdminService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email != config.AppConfig.AdminEmail {
		return "", ErrInvalidCredentials
	}
	hash := []byte(config.AppConfig.AdminPasswordHash)
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(email, adminSessionTTL)
	if err != nil {
		return "", err
	}
	key := utils.AdminTokenPrefix + utils.HashToken(token)
	if err := s.AuthCache.Set(ctx, key, "1", adminSessionTTL).Err(); err != nil {
		return "", err
	}
	zap.L().Info("admin session opened", zap.String("email", email))
	return token, nil
}

// Logout revokes the session token immediately.
func (s *DefaultAdminService) Logout(ctx context.Context, token string) error {
	return s.AuthCache.Del(ctx, utils.AdminTokenPrefix+utils.HashToken(token)).Err()
}

// BlockDates writes an admin block covering the inclusive range [from, to].
// The live index picks it up through the repository's change stream; nothing
// here touches the index directly.
func (s *DefaultAdminService) BlockDates(ctx context.Context, propertyID string, from, to models.DateOnly) (*models.Booking, error) {
	if !s.knownProperty(propertyID) {
		return nil, ErrUnknownProperty
	}
	interval, err := models.NewBookedInterval(from, to)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PropertyID: propertyID,
		StartDate:  interval.From.Time(),
		EndDate:    interval.To.Time(),
		Type:       models.BookingTypeAdmin,
	}
	if _, err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	zap.L().Info("dates blocked",
		zap.String("propertyId", propertyID),
		zap.String("from", interval.From.String()),
		zap.String("to", interval.To.String()))
	return booking, nil
}

func (s *DefaultAdminService) ListBlocks(ctx context.Context, propertyID string) ([]models.Booking, error) {
	if !s.knownProperty(propertyID) {
		return nil, ErrUnknownProperty
	}
	return s.Bookings.GetByProperty(ctx, propertyID)
}

func (s *DefaultAdminService) RemoveBlock(ctx context.Context, propertyID, bookingID string) error {
	if !s.knownProperty(propertyID) {
		return ErrUnknownProperty
	}
	return s.Bookings.Delete(ctx, propertyID, bookingID)
}

// NightlyPrice returns the configured price; a property with no price yet
// yields a zero-valued Pricing rather than an error.
func (s *DefaultAdminService) NightlyPrice(ctx context.Context, propertyID string) (*models.Pricing, error) {
	if !s.knownProperty(propertyID) {
		return nil, ErrUnknownProperty
	}
	pricing, err := s.Settings.GetPricing(ctx, propertyID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Pricing{PropertyID: propertyID}, nil
	}
	if err != nil {
		return nil, err
	}
	return pricing, nil
}

func (s *DefaultAdminService) SetNightlyPrice(ctx context.Context, propertyID string, price float64) (*models.Pricing, error) {
	if !s.knownProperty(propertyID) {
		return nil, ErrUnknownProperty
	}
	return s.Settings.SetPricing(ctx, propertyID, price)
}

// RegisterDevice stores the FCM token inquiry pushes are delivered to.
func (s *DefaultAdminService) RegisterDevice(ctx context.Context, fcmToken string) error {
	return s.Settings.SetAdminDevice(ctx, fcmToken)
}

func (s *DefaultAdminService) knownProperty(propertyID string) bool {
	for _, p := range config.AppConfig.Properties {
		if p.ID == propertyID {
			return true
		}
	}
	return false
}
