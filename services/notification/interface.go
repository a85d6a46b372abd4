package notification

import (
	"context"
	"fmt"

	settingsRepo "refugio/database/repository/settings"
	"refugio/models"
	"refugio/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Service delivers a push to the admin's device when a guest inquiry lands.
type Service interface {
	NotifyInquiry(ctx context.Context, inquiry models.Inquiry) error
}

// DefaultNotificationService is the FCM-backed implementation.
type DefaultNotificationService struct {
	Settings settingsRepo.SettingsRepository
}

func NewDefaultNotificationService(settings settingsRepo.SettingsRepository) (*DefaultNotificationService, error) {
	if settings == nil {
		return nil, fmt.Errorf("notification service initialization error: settings repository is nil")
	}
	return &DefaultNotificationService{Settings: settings}, nil
}

// NotifyInquiry looks up the registered admin device and sends the push.
// With FCM unconfigured the inquiry is logged and dropped, never failed.
func (s *DefaultNotificationService) NotifyInquiry(ctx context.Context, inquiry models.Inquiry) error {
	if utils.FCMClient == nil {
		zap.L().Info("push disabled, inquiry logged only",
			zap.String("propertyId", inquiry.PropertyID),
			zap.String("from", inquiry.From.String()),
			zap.String("to", inquiry.To.String()))
		return nil
	}

	device, err := s.Settings.GetAdminDevice(ctx)
	if err != nil {
		return fmt.Errorf("NotifyInquiry: no admin device registered: %w", err)
	}

	msg := &messaging.Message{
		Token: device.FCMToken,
		Notification: &messaging.Notification{
			Title: "Nueva consulta de reserva",
			Body:  fmt.Sprintf("Del %s al %s · %s", inquiry.From, inquiry.To, inquiry.PropertyID),
		},
		Data: map[string]string{
			"propertyId": inquiry.PropertyID,
			"from":       inquiry.From.String(),
			"to":         inquiry.To.String(),
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyInquiry: failed to send FCM message: %w", err)
	}
	return nil
}
