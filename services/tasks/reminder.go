package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripnest/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderLead is how long before the travel date the reminder fires.
const ReminderLead = 24 * time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
	}
	return task, opts, nil
}

// ParseReminderPayload decodes the body of a reminder task.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// ReminderTime returns when the reminder for a booking fires and whether that
// is still in the future.
func ReminderTime(travelDateMillis int64, now time.Time) (time.Time, bool) {
	at := time.UnixMilli(travelDateMillis).Add(-ReminderLead)
	return at, at.After(now)
}

// ReminderScheduler queues travel reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking) error
}

// Enqueuer is the part of asynq.Client used for scheduling.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler enqueues reminders on the Redis-backed asynq queue.
type AsynqReminderScheduler struct {
	client Enqueuer
	now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client, now: time.Now}
}

// ScheduleReminder does nothing when the reminder time has already passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking models.Booking) error {
	fireAt, ok := ReminderTime(booking.TravelDate, s.now())
	if !ok {
		return nil
	}
	task, opts, err := NewReminderTask(models.ReminderPayload{
		UserID:     booking.UserID,
		BookingID:  booking.ID,
		TripName:   booking.TripName,
		TravelDate: booking.TravelDate,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}
