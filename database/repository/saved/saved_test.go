package savedRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripnest/database/docstore"
	tripRepo "tripnest/database/repository/trip"
	"tripnest/models"
	"tripnest/utils"
)

func setup(t *testing.T) (*DocSavedTripsRepo, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	trips := tripRepo.NewTripRepo(store)
	for _, trip := range []models.Trip{{ID: "alps", Name: "Alps"}, {ID: "bali", Name: "Bali"}, {ID: "cairo", Name: "Cairo"}} {
		trip := trip
		if err := trips.Insert(context.Background(), &trip); err != nil {
			t.Fatal(err)
		}
	}
	return NewSavedTripsRepo(store, trips, time.Second, nil), store
}

func TestSaveAndRemove(t *testing.T) {
	repo, store := setup(t)
	ctx := utils.WithUserID(context.Background(), "u1")

	if repo.IsTripSaved(ctx, "bali") {
		t.Fatal("bali saved before SaveTrip")
	}
	if err := repo.SaveTrip(ctx, models.Trip{ID: "bali"}); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if !repo.IsTripSaved(ctx, "bali") {
		t.Fatal("bali not saved after SaveTrip")
	}
	if _, err := store.Get(ctx, Collection, "u1-bali"); err != nil {
		t.Fatalf("mark not keyed by user and trip: %v", err)
	}
	if repo.IsTripSaved(utils.WithUserID(context.Background(), "u2"), "bali") {
		t.Fatal("saved flag leaked to another user")
	}
	if err := repo.RemoveTrip(ctx, "bali"); err != nil {
		t.Fatalf("RemoveTrip: %v", err)
	}
	if repo.IsTripSaved(ctx, "bali") {
		t.Fatal("bali still saved after RemoveTrip")
	}
}

func TestAnonymous(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	if err := repo.SaveTrip(ctx, models.Trip{ID: "bali"}); !errors.Is(err, utils.ErrUnauthenticated) {
		t.Errorf("SaveTrip: got %v", err)
	}
	if repo.IsTripSaved(ctx, "bali") {
		t.Error("IsTripSaved true for anonymous caller")
	}
	if _, err := repo.WatchSavedTrips(ctx); !errors.Is(err, utils.ErrUnauthenticated) {
		t.Errorf("WatchSavedTrips: got %v", err)
	}
}

func TestIsTripSavedOnFailure(t *testing.T) {
	repo, store := setup(t)
	ctx := utils.WithUserID(context.Background(), "u1")
	_ = repo.SaveTrip(ctx, models.Trip{ID: "bali"})
	store.FailNext(errors.New("unavailable"))
	if repo.IsTripSaved(ctx, "bali") {
		t.Error("IsTripSaved true on backend failure")
	}
}

func TestListSavedTrips(t *testing.T) {
	repo, _ := setup(t)
	ctx := utils.WithUserID(context.Background(), "u1")
	_ = repo.SaveTrip(ctx, models.Trip{ID: "cairo"})
	_ = repo.SaveTrip(ctx, models.Trip{ID: "alps"})

	trips, err := repo.ListSavedTrips(ctx)
	if err != nil {
		t.Fatalf("ListSavedTrips: %v", err)
	}
	if len(trips) != 2 || trips[0].ID != "alps" || trips[1].ID != "cairo" {
		t.Fatalf("unexpected trips %+v", trips)
	}
}

func waitFor(t *testing.T, ch <-chan Update, pred func(Update) bool) Update {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u, ok := <-ch:
			if !ok {
				t.Fatal("channel closed")
			}
			if pred(u) {
				return u
			}
		case <-deadline:
			t.Fatal("timed out waiting for update")
		}
	}
}

func TestWatchSavedTrips(t *testing.T) {
	repo, _ := setup(t)
	base := utils.WithUserID(context.Background(), "u1")
	ctx, cancel := context.WithCancel(base)
	defer cancel()

	ch, err := repo.WatchSavedTrips(ctx)
	if err != nil {
		t.Fatalf("WatchSavedTrips: %v", err)
	}
	first := waitFor(t, ch, func(Update) bool { return true })
	if first.Err != nil || len(first.Trips) != 0 {
		t.Fatalf("initial update %+v", first)
	}

	if err := repo.SaveTrip(base, models.Trip{ID: "bali"}); err != nil {
		t.Fatal(err)
	}
	u := waitFor(t, ch, func(u Update) bool { return len(u.Trips) == 1 })
	if u.Trips[0].Name != "Bali" {
		t.Fatalf("joined trip %+v", u.Trips[0])
	}

	if err := repo.RemoveTrip(base, "bali"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, ch, func(u Update) bool { return u.Err == nil && len(u.Trips) == 0 })

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

type blockingCatalog struct{}

func (blockingCatalog) GetAll(ctx context.Context) ([]models.Trip, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWatchJoinTimeout(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewSavedTripsRepo(store, blockingCatalog{}, 20*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(utils.WithUserID(context.Background(), "u1"))
	defer cancel()
	if err := repo.SaveTrip(ctx, models.Trip{ID: "bali"}); err != nil {
		t.Fatal(err)
	}

	ch, err := repo.WatchSavedTrips(ctx)
	if err != nil {
		t.Fatal(err)
	}
	u := waitFor(t, ch, func(Update) bool { return true })
	if u.Err == nil || !errors.Is(u.Err, context.DeadlineExceeded) {
		t.Fatalf("expected join timeout, got %+v", u)
	}
}
