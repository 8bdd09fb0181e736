package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends push messages to a user's devices.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// TopicForUser is the FCM topic every device of userID subscribes to.
func TopicForUser(userID string) string {
	return "user-" + userID
}

// Sender is the part of the FCM client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotificationService pushes through Firebase Cloud Messaging.
type FCMNotificationService struct {
	client Sender
	logger *zap.Logger
}

func NewFCMNotificationService(client Sender, logger *zap.Logger) (*FCMNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: messaging client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FCMNotificationService{client: client, logger: logger}, nil
}

func (s *FCMNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "user"
	}
	msg := &messaging.Message{
		Topic: TopicForUser(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}

// LogNotificationService only logs pushes. Used when PUSH_ENABLED is off.
type LogNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) *LogNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotificationService{logger: logger}
}

func (s *LogNotificationService) SendUserPushNotification(_ context.Context, userID, title, body string, _ map[string]string) error {
	s.logger.Info("Push skipped (disabled)", zap.String("userId", userID), zap.String("title", title), zap.String("body", body))
	return nil
}
