package admin

import (
	"context"
	"errors"

	"refugio/models"
)

// ErrInvalidCredentials is returned on a failed panel login.
var ErrInvalidCredentials = errors.New("admin: invalid credentials")

// ErrUnknownProperty is returned for a property outside the configured catalog.
var ErrUnknownProperty = errors.New("admin: unknown property")

// Service bundles the operations behind the password-protected panel: manual
// date blocks, the nightly price, and the notification device.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error

	BlockDates(ctx context.Context, propertyID string, from, to models.DateOnly) (*models.Booking, error)
	ListBlocks(ctx context.Context, propertyID string) ([]models.Booking, error)
	RemoveBlock(ctx context.Context, propertyID, bookingID string) error

	NightlyPrice(ctx context.Context, propertyID string) (*models.Pricing, error)
	SetNightlyPrice(ctx context.Context, propertyID string, price float64) (*models.Pricing, error)

	RegisterDevice(ctx context.Context, fcmToken string) error
}
