package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripnest/models"
	"tripnest/services/notification"
	"tripnest/services/tasks"
	"tripnest/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes travel reminder tasks and pushes them to users.
type ReminderWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	redis  asynq.RedisClientOpt
	logger *zap.Logger
}

// BookingLookup reads the booking a reminder belongs to.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

func NewReminderWorker(opt asynq.RedisClientOpt, bookings BookingLookup, notifSvc notification.NotificationService, logger *zap.Logger) *ReminderWorker {
	srv := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(bookings, notifSvc, logger))
	return &ReminderWorker{srv: srv, mux: mux, redis: opt, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *ReminderWorker) Start(ctx context.Context) {
	go w.monitorRedisConnection(ctx)

	go func() {
		w.logger.Info("[ReminderWorker] Starting async worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("[ReminderWorker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("[ReminderWorker] Max retry attempts reached; reminders are disabled")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
}

// Shutdown stops fetching tasks and waits for running handlers.
func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleReminderTask pushes one reminder. Reminders of bookings that are gone
// or no longer confirmed are dropped.
func HandleReminderTask(bookings BookingLookup, notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			logger.Error("[ReminderHandler] Invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		booking, err := bookings.GetByID(ctx, p.BookingID)
		if errors.Is(err, utils.ErrNotFound) {
			logger.Info("[ReminderHandler] Booking gone, dropping reminder", zap.String("bookingId", p.BookingID))
			return nil
		}
		if err != nil {
			logger.Error("[ReminderHandler] Failed to fetch booking", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		if booking.Status != models.BookingConfirmed {
			logger.Info("[ReminderHandler] Booking not confirmed, dropping reminder",
				zap.String("bookingId", p.BookingID), zap.String("status", booking.Status))
			return nil
		}
		logger.Info("[ReminderHandler] Triggering reminder",
			zap.String("userId", p.UserID), zap.String("bookingId", p.BookingID))

		title := "Your trip is tomorrow"
		body := fmt.Sprintf("Get ready: %s starts tomorrow.", p.TripName)
		data := map[string]string{
			"bookingId":  p.BookingID,
			"travelDate": fmt.Sprint(p.TravelDate),
			"type":       "reminder",
		}
		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, title, body, data); err != nil {
			logger.Error("[ReminderHandler] Failed to send notification", zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func (w *ReminderWorker) monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     w.redis.Addr,
		Password: w.redis.Password,
		DB:       w.redis.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				w.logger.Warn("[ReminderWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
