package cron

import (
	"context"
	"encoding/json"
	"log"

	"refugio/config"
	"refugio/models"
	"refugio/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeInquiryNotify = "inquiry:notify"

// QueueRedisOpt is the redis connection the task queue runs on, shared by the
// enqueuing client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewInquiryTask wraps a guest inquiry for delivery through the queue. Pushes
// retry a few times before the inquiry is given up on; the guest still has
// the WhatsApp link either way.
func NewInquiryTask(inquiry models.Inquiry) (*asynq.Task, error) {
	payload, err := json.Marshal(inquiry)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInquiryNotify, payload, asynq.MaxRetry(5)), nil
}

// InitInquiryWorker runs the async worker in background.
func InitInquiryWorker(notifSvc notification.Service) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeInquiryNotify, handleInquiryTask(notifSvc))

	go func() {
		log.Println("[InquiryWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[InquiryWorker] failed to start worker: %v", err)
		}
	}()
}

func handleInquiryTask(notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var inquiry models.Inquiry
		if err := json.Unmarshal(task.Payload(), &inquiry); err != nil {
			zap.L().Error("inquiry task has invalid payload", zap.Error(err))
			return err
		}
		if err := notifSvc.NotifyInquiry(ctx, inquiry); err != nil {
			zap.L().Error("failed to deliver inquiry notification",
				zap.String("propertyId", inquiry.PropertyID), zap.Error(err))
			return err
		}
		return nil
	}
}
