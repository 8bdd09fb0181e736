package hotelRepo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// seedHotels stores a hotel whose key differs from its hotelId, and one that is
// only reachable through an alternate spelling of its id.
func seedHotels(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.Set(ctx, HotelsCollection, "h-001", map[string]any{
		"hotelId": "grand_bali", "name": "Grand Bali", "location": "Bali", "rating": 4.5,
	}))
	must(store.Set(ctx, roomTypesPath("h-001"), "deluxe", map[string]any{
		"id": "deluxe", "name": "Deluxe", "basePrice": "$120",
	}))
	must(store.Set(ctx, roomTypesPath("h-001"), "auto-key", map[string]any{
		"id": "suite", "name": "Suite", "basePrice": "$300",
	}))
	must(store.Set(ctx, roomsPath("h-001", "deluxe"), "r1", map[string]any{
		"roomNumber": "101", "status": models.RoomAvailable,
	}))
	must(store.Set(ctx, roomsPath("h-001", "deluxe"), "r2", map[string]any{
		"roomNumber": "102", "status": models.RoomBooked,
	}))
	must(store.Set(ctx, roomsPath("h-001", "deluxe"), "r3", map[string]any{
		"roomNumber": "103", "status": models.RoomAvailable,
	}))

	must(store.Set(ctx, HotelsCollection, "SeasideResort", map[string]any{"name": "Seaside Resort"}))
	must(store.Set(ctx, roomTypesPath("SeasideResort"), "standard", map[string]any{
		"id": "standard", "name": "Standard",
	}))
	return store
}

func TestKeyVariants(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"seaside_resort", []string{"seasideresort", "SeasideResort", "Seaside Resort"}},
		{"plain", []string{"Plain"}},
		{"Already", []string{}},
		{"a__b", []string{"ab", "AB", "A B"}},
	}
	for _, tc := range cases {
		got := keyVariants(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("keyVariants(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveHotel(t *testing.T) {
	repo := NewHotelRepo(seedHotels(t))
	ctx := context.Background()

	cases := []struct {
		in, want string
	}{
		{"grand_bali", "h-001"},
		{"h-001", "h-001"},
		{"seaside_resort", "SeasideResort"},
		{"SeasideResort", "SeasideResort"},
	}
	for _, tc := range cases {
		got, err := repo.ResolveHotel(ctx, tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ResolveHotel(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	if _, err := repo.ResolveHotel(ctx, "nowhere_inn"); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGetHotelByID(t *testing.T) {
	repo := NewHotelRepo(seedHotels(t))
	hotel, err := repo.GetHotelByID(context.Background(), "grand_bali")
	if err != nil {
		t.Fatalf("GetHotelByID: %v", err)
	}
	if hotel.ID != "grand_bali" || hotel.Name != "Grand Bali" || hotel.Rating != 4.5 {
		t.Errorf("unexpected hotel %+v", hotel)
	}
}

func TestListRoomTypes(t *testing.T) {
	repo := NewHotelRepo(seedHotels(t))
	ctx := context.Background()

	types, err := repo.ListRoomTypes(ctx, "grand_bali")
	if err != nil || len(types) != 2 {
		t.Fatalf("ListRoomTypes(grand_bali) = %v, %v", types, err)
	}
	types, err = repo.ListRoomTypes(ctx, "seaside_resort")
	if err != nil || len(types) != 1 || types[0].Name != "Standard" {
		t.Fatalf("ListRoomTypes(seaside_resort) = %v, %v", types, err)
	}
	types, err = repo.ListRoomTypes(ctx, "nowhere_inn")
	if err != nil || types == nil || len(types) != 0 {
		t.Fatalf("ListRoomTypes(nowhere_inn) = %v, %v; want empty list", types, err)
	}
}

func TestListAvailableRooms(t *testing.T) {
	repo := NewHotelRepo(seedHotels(t))
	rooms, err := repo.ListAvailableRooms(context.Background(), "grand_bali", "deluxe")
	if err != nil {
		t.Fatalf("ListAvailableRooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].RoomNumber != "101" || rooms[1].RoomNumber != "103" {
		t.Errorf("unexpected rooms %+v", rooms)
	}
	if _, err := repo.ListAvailableRooms(context.Background(), "grand_bali", "penthouse"); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("expected room type not found, got %v", err)
	}
}

func TestBookRoom(t *testing.T) {
	store := seedHotels(t)
	repo := NewHotelRepo(store, WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	room, err := repo.BookRoom(ctx, "grand_bali", "deluxe", "101")
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if room.Status != models.RoomBooked || room.BookedAt != fixedNow.UnixMilli() {
		t.Errorf("unexpected room %+v", room)
	}
	doc, _ := store.Get(ctx, roomsPath("h-001", "deluxe"), "r1")
	if doc.Data["status"] != models.RoomBooked {
		t.Errorf("stored status = %v", doc.Data["status"])
	}

	if _, err := repo.BookRoom(ctx, "grand_bali", "deluxe", "101"); !errors.Is(err, utils.ErrConflict) {
		t.Errorf("rebooking: expected conflict, got %v", err)
	} else if err.Error() != "room 101 is already booked" {
		t.Errorf("message = %q", err.Error())
	}

	_, err = repo.BookRoom(ctx, "grand_bali", "deluxe", "999")
	if !errors.Is(err, utils.ErrNotFound) || err.Error() != "room 999 not found" {
		t.Errorf("missing room: got %v", err)
	}
	docs, _ := store.Find(ctx, roomsPath("h-001", "deluxe"), docstore.Where("roomNumber", "999"))
	if len(docs) != 0 {
		t.Errorf("strict mode created %d room records", len(docs))
	}
}

func TestBookRoomAutoProvision(t *testing.T) {
	store := seedHotels(t)
	repo := NewHotelRepo(store, WithAutoProvision(true))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		room, err := repo.BookRoom(ctx, "grand_bali", "suite", "501")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if room.Status != models.RoomBooked {
			t.Errorf("call %d: status %s", i, room.Status)
		}
	}
	docs, err := store.Find(ctx, roomsPath("h-001", "auto-key"), docstore.Where("roomNumber", "501"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Key == docs[1].Key {
		t.Fatalf("expected two distinct booked records, got %+v", docs)
	}
}

func TestBookRoomAutoProvisionBooksAvailableRoom(t *testing.T) {
	store := seedHotels(t)
	repo := NewHotelRepo(store, WithAutoProvision(true))
	ctx := context.Background()

	if _, err := repo.BookRoom(ctx, "grand_bali", "deluxe", "101"); err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	doc, _ := store.Get(ctx, roomsPath("h-001", "deluxe"), "r1")
	if doc.Data["status"] != models.RoomBooked {
		t.Errorf("stored status = %v", doc.Data["status"])
	}
	docs, _ := store.Find(ctx, roomsPath("h-001", "deluxe"), docstore.Where("roomNumber", "101"))
	if len(docs) != 1 {
		t.Fatalf("expected the existing record to be reused, got %d", len(docs))
	}

	if _, err := repo.BookRoom(ctx, "grand_bali", "deluxe", "101"); err != nil {
		t.Fatalf("second BookRoom: %v", err)
	}
	docs, _ = store.Find(ctx, roomsPath("h-001", "deluxe"), docstore.Where("roomNumber", "101"))
	if len(docs) != 2 {
		t.Fatalf("expected a second booked record, got %d", len(docs))
	}
}

func TestBookRoomUnknownHotel(t *testing.T) {
	ctx := context.Background()
	strict := NewHotelRepo(seedHotels(t))
	if _, err := strict.BookRoom(ctx, "nowhere_inn", "deluxe", "1"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := strict.BookRoom(ctx, "grand_bali", "penthouse", "1"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("expected room type not found, got %v", err)
	}

	store := seedHotels(t)
	legacy := NewHotelRepo(store, WithAutoProvision(true))
	if _, err := legacy.BookRoom(ctx, "nowhere_inn", "deluxe", "1"); err != nil {
		t.Fatalf("auto-provision on unknown hotel: %v", err)
	}
	docs, err := store.Find(ctx, roomsPath("nowhere_inn", "deluxe"), docstore.Where("roomNumber", "1"))
	if err != nil || len(docs) != 1 || docs[0].Data["status"] != models.RoomBooked {
		t.Fatalf("expected a booked room under the raw keys, got %+v (%v)", docs, err)
	}
	if _, err := legacy.BookRoom(ctx, "grand_bali", "penthouse", "7"); err != nil {
		t.Fatalf("auto-provision on unknown room type: %v", err)
	}
	docs, _ = store.Find(ctx, roomsPath("h-001", "penthouse"), docstore.Where("roomNumber", "7"))
	if len(docs) != 1 {
		t.Fatalf("expected a booked room under the raw room type key, got %d", len(docs))
	}
}
