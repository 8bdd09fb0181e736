package seed

import (
	"context"
	"testing"

	"tripnest/database/docstore"
	hotelRepo "tripnest/database/repository/hotel"
	tripRepo "tripnest/database/repository/trip"
)

func TestRun(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	if err := Run(ctx, store); err != nil {
		t.Fatalf("Run: %v", err)
	}

	featured, err := tripRepo.NewTripRepo(store).GetFeatured(ctx)
	if err != nil || len(featured) != 2 {
		t.Fatalf("featured = %d, %v", len(featured), err)
	}

	hotels := hotelRepo.NewHotelRepo(store)
	rooms, err := hotels.ListAvailableRooms(ctx, "grand_bali_resort", "deluxe")
	if err != nil || len(rooms) != 3 {
		t.Fatalf("rooms = %d, %v", len(rooms), err)
	}
	types, err := hotels.ListRoomTypes(ctx, "alpine_lodge")
	if err != nil || len(types) != 1 {
		t.Fatalf("alpine_lodge room types = %d, %v", len(types), err)
	}
}
