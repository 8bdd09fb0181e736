package savedRepo

import (
	"context"
	"time"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"

	"go.uber.org/zap"
)

// Collection holds saved-trip marks keyed "{userId}-{tripId}".
const Collection = "saved_trips"

// DefaultJoinTimeout bounds one catalog join of a saved-trips snapshot.
const DefaultJoinTimeout = 10 * time.Second

// Catalog is the part of the trip repository the join needs.
type Catalog interface {
	GetAll(ctx context.Context) ([]models.Trip, error)
}

// Update is one result of the live saved-trips list.
type Update struct {
	Trips []models.Trip
	Err   error
}

// SavedTripsRepository manages the current user's saved trips.
type SavedTripsRepository interface {
	SaveTrip(ctx context.Context, trip models.Trip) error
	RemoveTrip(ctx context.Context, tripID string) error
	IsTripSaved(ctx context.Context, tripID string) bool
	ListSavedTrips(ctx context.Context) ([]models.Trip, error)
	WatchSavedTrips(ctx context.Context) (<-chan Update, error)
}

// DocSavedTripsRepo implements SavedTripsRepository on a document store.
type DocSavedTripsRepo struct {
	store       docstore.Store
	catalog     Catalog
	joinTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewSavedTripsRepo(store docstore.Store, catalog Catalog, joinTimeout time.Duration, logger *zap.Logger) *DocSavedTripsRepo {
	if joinTimeout <= 0 {
		joinTimeout = DefaultJoinTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocSavedTripsRepo{
		store:       store,
		catalog:     catalog,
		joinTimeout: joinTimeout,
		logger:      logger,
		now:         time.Now,
	}
}

func (r *DocSavedTripsRepo) SaveTrip(ctx context.Context, trip models.Trip) error {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return err
	}
	if trip.ID == "" {
		return utils.InvalidArgument("trip id is required")
	}
	mark := models.SavedTrip{
		ID:      models.SavedTripID(uid, trip.ID),
		UserID:  uid,
		TripID:  trip.ID,
		SavedAt: r.now().UnixMilli(),
	}
	data, err := docstore.Encode(mark)
	if err != nil {
		return utils.Wrap(err, "failed to encode saved trip")
	}
	if err := r.store.Set(ctx, Collection, mark.ID, data); err != nil {
		return utils.Wrap(err, "failed to save trip %s", trip.ID)
	}
	return nil
}

func (r *DocSavedTripsRepo) RemoveTrip(ctx context.Context, tripID string) error {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return err
	}
	if err := r.store.Delete(ctx, Collection, models.SavedTripID(uid, tripID)); err != nil {
		return utils.Wrap(err, "failed to remove saved trip %s", tripID)
	}
	return nil
}

// IsTripSaved reports false for anonymous callers and on any failure.
func (r *DocSavedTripsRepo) IsTripSaved(ctx context.Context, tripID string) bool {
	uid, ok := utils.UserIDFromContext(ctx)
	if !ok {
		return false
	}
	_, err := r.store.Get(ctx, Collection, models.SavedTripID(uid, tripID))
	return err == nil
}

func (r *DocSavedTripsRepo) ListSavedTrips(ctx context.Context) ([]models.Trip, error) {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := r.store.Find(ctx, Collection, docstore.Where("userId", uid))
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch saved trips")
	}
	return r.join(ctx, docs)
}

// WatchSavedTrips streams the caller's saved trips, joined with the catalog.
// Snapshots are joined one at a time in arrival order; the channel closes when
// ctx ends, which also stops the watch and cancels a join in flight.
func (r *DocSavedTripsRepo) WatchSavedTrips(ctx context.Context) (<-chan Update, error) {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	snaps, err := r.store.Watch(ctx, Collection, docstore.Where("userId", uid))
	if err != nil {
		return nil, utils.Wrap(err, "failed to watch saved trips")
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				update := r.process(ctx, snap)
				if ctx.Err() != nil {
					return
				}
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *DocSavedTripsRepo) process(ctx context.Context, snap docstore.Snapshot) Update {
	if snap.Err != nil {
		r.logger.Warn("Saved trips watch failed", zap.Error(snap.Err))
		return Update{Err: utils.Wrap(snap.Err, "failed to watch saved trips")}
	}
	jctx, cancel := context.WithTimeout(ctx, r.joinTimeout)
	defer cancel()
	trips, err := r.join(jctx, snap.Docs)
	if err != nil {
		return Update{Err: err}
	}
	return Update{Trips: trips}
}

// join keeps the catalog trips whose ids are saved, in catalog order.
func (r *DocSavedTripsRepo) join(ctx context.Context, marks []docstore.Document) ([]models.Trip, error) {
	saved := make(map[string]bool, len(marks))
	for _, doc := range marks {
		var mark models.SavedTrip
		if err := docstore.Decode(doc.Data, &mark); err != nil {
			return nil, utils.Wrap(err, "failed to decode saved trip %s", doc.Key)
		}
		saved[mark.TripID] = true
	}
	trips := make([]models.Trip, 0, len(saved))
	if len(saved) == 0 {
		return trips, nil
	}

	all, err := r.catalog.GetAll(ctx)
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch saved trips")
	}
	for _, t := range all {
		if saved[t.ID] {
			trips = append(trips, t)
		}
	}
	return trips, nil
}
