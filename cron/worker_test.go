package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tripnest/models"
	"tripnest/services/tasks"
	"tripnest/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	userID, title string
	data          map[string]string
	err           error
}

func (r *recordingNotifier) SendUserPushNotification(_ context.Context, userID, title, _ string, data map[string]string) error {
	r.userID, r.title, r.data = userID, title, data
	return r.err
}

type bookingTable map[string]*models.Booking

func (b bookingTable) GetByID(_ context.Context, id string) (*models.Booking, error) {
	booking, ok := b[id]
	if !ok {
		return nil, utils.NotFound("booking %s not found", id)
	}
	return booking, nil
}

func confirmed() bookingTable {
	return bookingTable{"u1-bali-1": {ID: "u1-bali-1", UserID: "u1", Status: models.BookingConfirmed}}
}

func TestHandleReminderTask(t *testing.T) {
	n := &recordingNotifier{}
	handler := HandleReminderTask(confirmed(), n, zap.NewNop())

	b, _ := json.Marshal(models.ReminderPayload{UserID: "u1", BookingID: "u1-bali-1", TripName: "Bali"})
	if err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSendReminder, b)); err != nil {
		t.Fatalf("ProcessTask: %v", err)
	}
	if n.userID != "u1" || n.data["bookingId"] != "u1-bali-1" {
		t.Fatalf("pushed %+v", n)
	}

	n.err = errors.New("fcm down")
	if err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSendReminder, b)); err == nil {
		t.Fatal("expected push failure to be returned for retry")
	}
}

func TestHandleReminderTaskBadPayload(t *testing.T) {
	handler := HandleReminderTask(confirmed(), &recordingNotifier{}, zap.NewNop())
	err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("got %v, want SkipRetry", err)
	}
}

func TestHandleReminderTaskSkipsInactiveBookings(t *testing.T) {
	b, _ := json.Marshal(models.ReminderPayload{UserID: "u1", BookingID: "u1-bali-1", TripName: "Bali"})
	task := asynq.NewTask(tasks.TypeSendReminder, b)

	cancelled := bookingTable{"u1-bali-1": {ID: "u1-bali-1", UserID: "u1", Status: models.BookingCancelled}}
	for name, bookings := range map[string]bookingTable{"cancelled": cancelled, "deleted": {}} {
		t.Run(name, func(t *testing.T) {
			n := &recordingNotifier{}
			if err := HandleReminderTask(bookings, n, zap.NewNop()).ProcessTask(context.Background(), task); err != nil {
				t.Fatalf("ProcessTask: %v", err)
			}
			if n.userID != "" {
				t.Fatalf("reminder pushed for %s booking: %+v", name, n)
			}
		})
	}
}
