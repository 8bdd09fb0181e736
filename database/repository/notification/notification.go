package notificationRepo

import (
	"context"
	"errors"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

// Collection holds the read-only notifications feed.
const Collection = "notifications"

type NotificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
}

type DocNotificationRepo struct {
	store docstore.Store
}

func NewNotificationRepo(store docstore.Store) *DocNotificationRepo {
	return &DocNotificationRepo{store: store}
}

// List returns the feed, newest first.
func (r *DocNotificationRepo) List(ctx context.Context) ([]models.Notification, error) {
	docs, err := r.store.Find(ctx, Collection, docstore.Query{}.Order("createdAt", true))
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch notifications")
	}
	out := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *DocNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("notification %s not found", id)
		}
		return nil, utils.Wrap(err, "failed to fetch notification %s", id)
	}
	return decode(*doc)
}

// Insert stores a feed entry under its id. Used by the seeder.
func (r *DocNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		return utils.InvalidArgument("notification id is required")
	}
	data, err := docstore.Encode(n)
	if err != nil {
		return utils.Wrap(err, "failed to encode notification")
	}
	if err := r.store.Set(ctx, Collection, n.ID, data); err != nil {
		return utils.Wrap(err, "failed to insert notification %s", n.ID)
	}
	return nil
}

func decode(doc docstore.Document) (*models.Notification, error) {
	var n models.Notification
	if err := docstore.Decode(doc.Data, &n); err != nil {
		return nil, utils.Wrap(err, "failed to decode notification %s", doc.Key)
	}
	if n.ID == "" {
		n.ID = doc.Key
	}
	return &n, nil
}
