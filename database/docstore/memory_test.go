package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "trips", "bali"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "trips", "bali", map[string]any{"id": "bali", "price": 90.0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, "trips", "bali", map[string]any{"price": 120.0}); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Get(ctx, "trips", "bali")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Data["price"] != 120.0 || doc.Data["id"] != "bali" {
		t.Fatalf("partial update lost fields: %#v", doc.Data)
	}

	doc.Data["price"] = 1.0
	again, _ := s.Get(ctx, "trips", "bali")
	if again.Data["price"] != 120.0 {
		t.Fatal("returned document aliases stored data")
	}

	if err := s.Update(ctx, "trips", "nope", map[string]any{"x": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing = %v", err)
	}
	if err := s.Delete(ctx, "trips", "bali"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "trips", "bali"); err != nil {
		t.Fatalf("deleting a missing doc should not fail: %v", err)
	}
}

func TestMemoryStoreFindFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "bookings", "a", map[string]any{"userId": "u1", "bookingDate": int64(10)})
	_ = s.Set(ctx, "bookings", "b", map[string]any{"userId": "u1", "bookingDate": int64(30)})
	_ = s.Set(ctx, "bookings", "c", map[string]any{"userId": "u2", "bookingDate": int64(20)})
	_ = s.Set(ctx, "bookings", "d", map[string]any{"userId": "u1", "bookingDate": int64(20)})

	docs, err := s.Find(ctx, "bookings", Where("userId", "u1").Order("bookingDate", true))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, d := range docs {
		keys = append(keys, d.Key)
	}
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "d" || keys[2] != "a" {
		t.Fatalf("order = %v, want [b d a]", keys)
	}

	limited, _ := s.Find(ctx, "bookings", Query{}.Take(2))
	if len(limited) != 2 {
		t.Fatalf("limit returned %d docs", len(limited))
	}
}

func TestMemoryStoreNestedCollectionsAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	deluxe := Path("hotels", "h1", "roomTypes", "deluxe", "rooms")
	standard := Path("hotels", "h1", "roomTypes", "standard", "rooms")
	_ = s.Set(ctx, deluxe, "101", map[string]any{"roomNumber": "101"})
	_ = s.Set(ctx, standard, "101", map[string]any{"roomNumber": "101", "status": "booked"})

	d, _ := s.Get(ctx, deluxe, "101")
	if _, ok := d.Data["status"]; ok {
		t.Fatal("rooms of different room types collided")
	}
	key, err := s.Add(ctx, deluxe, map[string]any{"roomNumber": "102"})
	if err != nil || key == "" {
		t.Fatalf("Add = %q, %v", key, err)
	}
	all, _ := s.Find(ctx, deluxe, Query{})
	if len(all) != 2 {
		t.Fatalf("deluxe rooms = %d", len(all))
	}
}

func TestMemoryStoreFailNext(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("unavailable")
	s.FailNext(boom)
	if _, err := s.Find(ctx, "trips", Query{}); !errors.Is(err, boom) {
		t.Fatalf("Find = %v, want injected failure", err)
	}
	if _, err := s.Find(ctx, "trips", Query{}); err != nil {
		t.Fatalf("failure should apply once: %v", err)
	}
}

func TestMemoryStoreWatch(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = s.Set(ctx, "saved_trips", "u1-bali", map[string]any{"userId": "u1", "tripId": "bali"})
	ch, err := s.Watch(ctx, "saved_trips", Where("userId", "u1"))
	if err != nil {
		t.Fatal(err)
	}

	first := receive(t, ch)
	if len(first.Docs) != 1 {
		t.Fatalf("initial snapshot has %d docs", len(first.Docs))
	}

	_ = s.Set(ctx, "saved_trips", "u2-rome", map[string]any{"userId": "u2", "tripId": "rome"})
	_ = s.Set(ctx, "saved_trips", "u1-rome", map[string]any{"userId": "u1", "tripId": "rome"})

	// Intermediate snapshots may be coalesced; the newest one must show both trips.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if len(snap.Docs) == 2 {
				cancel()
				for range ch {
				}
				return
			}
		case <-deadline:
			t.Fatal("never observed the second saved trip")
		}
	}
}

func TestMemoryStoreWatchClosesOnCancel(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Watch(ctx, "saved_trips", Query{})
	if err != nil {
		t.Fatal(err)
	}
	receive(t, ch)
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// a pending snapshot may race with cancellation; the next read must see the close
			if _, ok := <-ch; ok {
				t.Fatal("channel still open after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}
