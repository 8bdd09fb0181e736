package screens

import (
	"context"

	notificationRepo "tripnest/database/repository/notification"
	"tripnest/models"
)

type NotificationsScreen struct {
	repo   notificationRepo.NotificationRepository
	Feed   *Holder[[]models.Notification]
	Detail *Holder[*models.Notification]
}

func NewNotificationsScreen(repo notificationRepo.NotificationRepository) *NotificationsScreen {
	return &NotificationsScreen{
		repo:   repo,
		Feed:   NewHolder[[]models.Notification](),
		Detail: NewHolder[*models.Notification](),
	}
}

func (s *NotificationsScreen) Load(ctx context.Context) (State[[]models.Notification], error) {
	return s.Feed.Run(ctx, s.repo.List)
}

func (s *NotificationsScreen) Open(ctx context.Context, id string) (State[*models.Notification], error) {
	return s.Detail.Run(ctx, func(ctx context.Context) (*models.Notification, error) {
		return s.repo.GetByID(ctx, id)
	})
}
