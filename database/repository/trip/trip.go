package tripRepo

import (
	"context"
	"errors"
	"time"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

// Collection holds the trip catalog.
const Collection = "trips"

// TripRepository reads and seeds the trip catalog.
type TripRepository interface {
	GetAll(ctx context.Context) ([]models.Trip, error)
	GetFeatured(ctx context.Context) ([]models.Trip, error)
	GetByCategory(ctx context.Context, category string) ([]models.Trip, error)
	// GetByID looks the trip up by its id field, then by storage key.
	GetByID(ctx context.Context, id string) (*models.Trip, error)
	// Insert stores trip under its own id.
	Insert(ctx context.Context, trip *models.Trip) error
}

// DocTripRepo implements TripRepository on a document store.
type DocTripRepo struct {
	store docstore.Store
}

func NewTripRepo(store docstore.Store) *DocTripRepo {
	return &DocTripRepo{store: store}
}

func (r *DocTripRepo) GetAll(ctx context.Context) ([]models.Trip, error) {
	return r.find(ctx, docstore.Query{}, "failed to fetch trips")
}

func (r *DocTripRepo) GetFeatured(ctx context.Context) ([]models.Trip, error) {
	return r.find(ctx, docstore.Where("featured", true), "failed to fetch featured trips")
}

func (r *DocTripRepo) GetByCategory(ctx context.Context, category string) ([]models.Trip, error) {
	return r.find(ctx, docstore.Where("category", category), "failed to fetch trips in category %s", category)
}

func (r *DocTripRepo) find(ctx context.Context, q docstore.Query, format string, args ...any) ([]models.Trip, error) {
	docs, err := r.store.Find(ctx, Collection, q)
	if err != nil {
		return nil, utils.Wrap(err, format, args...)
	}
	trips, err := DecodeTrips(docs)
	if err != nil {
		return nil, utils.Wrap(err, format, args...)
	}
	return trips, nil
}

func (r *DocTripRepo) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	if id == "" {
		return nil, utils.InvalidArgument("trip id is required")
	}
	docs, err := r.store.Find(ctx, Collection, docstore.Where("id", id).Take(1))
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch trip %s", id)
	}
	if len(docs) > 0 {
		return decodeTrip(docs[0])
	}

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("trip %s not found", id)
		}
		return nil, utils.Wrap(err, "failed to fetch trip %s", id)
	}
	return decodeTrip(*doc)
}

func (r *DocTripRepo) Insert(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		return utils.InvalidArgument("trip id is required")
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().UnixMilli()
	}
	data, err := docstore.Encode(trip)
	if err != nil {
		return utils.Wrap(err, "failed to encode trip %s", trip.ID)
	}
	if err := r.store.Set(ctx, Collection, trip.ID, data); err != nil {
		return utils.Wrap(err, "failed to insert trip %s", trip.ID)
	}
	return nil
}

// DecodeTrips converts catalog documents to trips. A document without an id
// field takes its storage key.
func DecodeTrips(docs []docstore.Document) ([]models.Trip, error) {
	trips := make([]models.Trip, 0, len(docs))
	for _, doc := range docs {
		t, err := decodeTrip(doc)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, nil
}

func decodeTrip(doc docstore.Document) (*models.Trip, error) {
	var t models.Trip
	if err := docstore.Decode(doc.Data, &t); err != nil {
		return nil, utils.Wrap(err, "failed to decode trip %s", doc.Key)
	}
	if t.ID == "" {
		t.ID = doc.Key
	}
	return &t, nil
}
