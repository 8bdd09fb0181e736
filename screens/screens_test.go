package screens

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripnest/database/docstore"
	bookingRepo "tripnest/database/repository/booking"
	hotelRepo "tripnest/database/repository/hotel"
	notificationRepo "tripnest/database/repository/notification"
	savedRepo "tripnest/database/repository/saved"
	tripRepo "tripnest/database/repository/trip"
	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/services/auth"
	"tripnest/services/booking"
	"tripnest/utils"

	"golang.org/x/crypto/bcrypt"
)

type deps struct {
	store    *docstore.MemoryStore
	trips    *tripRepo.DocTripRepo
	hotels   *hotelRepo.DocHotelRepo
	bookings *bookingRepo.DocBookingRepo
	saved    *savedRepo.DocSavedTripsRepo
	auth     *auth.DefaultAuthService
	svc      *booking.DefaultBookingService
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	d := &deps{store: store, trips: tripRepo.NewTripRepo(store)}
	for _, trip := range []models.Trip{
		{ID: "bali", Name: "Bali", Featured: true, Category: "beach", Location: "Bali"},
		{ID: "alps", Name: "Alps", Category: "mountain"},
	} {
		trip := trip
		if err := d.trips.Insert(ctx, &trip); err != nil {
			t.Fatal(err)
		}
	}
	_ = store.Set(ctx, "hotels", "h-001", map[string]any{"hotelId": "grand_bali", "name": "Grand Bali"})
	_ = store.Set(ctx, "hotels/h-001/roomTypes", "deluxe", map[string]any{"id": "deluxe", "name": "Deluxe"})
	_ = store.Set(ctx, "hotels/h-001/roomTypes/deluxe/rooms", "r1", map[string]any{"roomNumber": "101", "status": "available"})

	d.hotels = hotelRepo.NewHotelRepo(store)
	d.bookings = bookingRepo.NewBookingRepo(store)
	d.saved = savedRepo.NewSavedTripsRepo(store, d.trips, time.Second, nil)
	users := userRepo.NewUserRepo(store)
	d.auth = auth.NewAuthService(auth.NewLocalIdentity(users, bcrypt.MinCost), users, auth.NewMemorySessionStore(), utils.NewTokenIssuer("k", time.Hour), nil)
	d.svc = booking.NewBookingService(d.bookings, d.hotels, d.trips, nil, nil, nil, nil)
	return d
}

func TestHomeAndTripList(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	st, err := NewHomeScreen(d.trips).Load(ctx)
	if err != nil || len(st.Data) != 1 || st.Data[0].ID != "bali" {
		t.Fatalf("home %+v, %v", st, err)
	}
	list := NewTripListScreen(d.trips)
	if st, _ := list.Load(ctx, ""); len(st.Data) != 2 {
		t.Errorf("all trips %+v", st)
	}
	if st, _ := list.Load(ctx, "mountain"); len(st.Data) != 1 || st.Data[0].ID != "alps" {
		t.Errorf("mountain trips %+v", st)
	}
}

func TestTripDetailSaveToggle(t *testing.T) {
	d := newDeps(t)
	ctx := utils.WithUserID(context.Background(), "u1")
	screen := NewTripDetailScreen(d.trips, d.saved)

	st, err := screen.Load(ctx, "bali")
	if err != nil || st.Data.Trip.Name != "Bali" || st.Data.Saved {
		t.Fatalf("detail %+v, %v", st, err)
	}
	if st, err = screen.SetSaved(ctx, "bali", true); err != nil || !st.Data.Saved {
		t.Fatalf("save %+v, %v", st, err)
	}
	if st, _ = screen.Load(ctx, "bali"); !st.Data.Saved {
		t.Fatal("saved flag not persisted")
	}
	if st, _ = screen.SetSaved(ctx, "bali", false); st.Data.Saved {
		t.Fatal("remove did not clear flag")
	}

	st, err = screen.Load(ctx, "atlantis")
	if !errors.Is(err, utils.ErrNotFound) || st.Error != "trip atlantis not found" {
		t.Fatalf("missing trip %+v, %v", st, err)
	}
}

func TestSavedTripsSubscribe(t *testing.T) {
	d := newDeps(t)
	base := utils.WithUserID(context.Background(), "u1")
	ctx, cancel := context.WithCancel(base)
	screen := NewSavedTripsScreen(d.saved)

	done, err := screen.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	_ = d.saved.SaveTrip(base, models.Trip{ID: "alps"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		st := screen.Trips.State()
		if len(st.Data) == 1 && st.Data[0].ID == "alps" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("saved trip never shown: %+v", st)
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not stop")
	}

	if _, err := NewSavedTripsScreen(d.saved).Subscribe(context.Background()); !errors.Is(err, utils.ErrUnauthenticated) {
		t.Fatalf("anonymous subscribe: %v", err)
	}
}

func TestHotelAndRoomSelection(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	hotel := NewHotelScreen(d.hotels)
	if st, err := hotel.LoadHotel(ctx, "grand_bali"); err != nil || st.Data.Name != "Grand Bali" {
		t.Fatalf("hotel %+v, %v", st, err)
	}
	if st, _ := hotel.LoadRoomTypes(ctx, "grand_bali"); len(st.Data) != 1 {
		t.Fatalf("room types %+v", st)
	}

	rooms := NewRoomSelectionScreen(d.hotels)
	if st, _ := rooms.LoadRooms(ctx, "grand_bali", "deluxe"); len(st.Data) != 1 {
		t.Fatalf("rooms %+v", st)
	}
	if _, err := rooms.BookRoom(ctx, "grand_bali", "deluxe", "101"); err != nil {
		t.Fatal(err)
	}
	st, err := rooms.BookRoom(ctx, "grand_bali", "deluxe", "101")
	if !errors.Is(err, utils.ErrConflict) || st.Error != "room 101 is already booked" {
		t.Fatalf("rebook %+v, %v", st, err)
	}
}

func TestBookingAndProfile(t *testing.T) {
	d := newDeps(t)
	ctx := context.Background()

	authScreen := NewAuthScreen(d.auth)
	sess, err := authScreen.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	if err != nil {
		t.Fatal(err)
	}
	userCtx := utils.WithUserID(ctx, sess.Data.User.ID)

	bookingScreen := NewBookingScreen(d.svc)
	st, err := bookingScreen.Confirm(userCtx, models.BookingRequest{TripID: "bali", TripName: "Bali", NumberOfTravelers: 2, PricePerPerson: 180})
	if err != nil || st.Data.Booking.TotalPrice != 360 || st.Data.TripLocation != "Bali" {
		t.Fatalf("confirm %+v, %v", st, err)
	}

	profile := NewProfileScreen(d.auth, d.bookings, d.svc)
	if u, err := profile.LoadUser(userCtx); err != nil || u.Data.Name != "Ada" {
		t.Fatalf("user %+v, %v", u, err)
	}
	list, err := profile.LoadBookings(userCtx)
	if err != nil || len(list.Data) != 1 {
		t.Fatalf("bookings %+v, %v", list, err)
	}
	list, err = profile.CancelBooking(userCtx, list.Data[0].ID)
	if err != nil || list.Data[0].Status != models.BookingCancelled {
		t.Fatalf("cancel %+v, %v", list, err)
	}

	if st, err := profile.LoadUser(ctx); !errors.Is(err, utils.ErrUnauthenticated) || st.Error != "user not authenticated" {
		t.Fatalf("anonymous profile %+v, %v", st, err)
	}
}

func TestNotifications(t *testing.T) {
	d := newDeps(t)
	repo := notificationRepo.NewNotificationRepo(d.store)
	_ = repo.Insert(context.Background(), &models.Notification{ID: "n1", Title: "Summer deals", CreatedAt: 1})

	screen := NewNotificationsScreen(repo)
	if st, err := screen.Load(context.Background()); err != nil || len(st.Data) != 1 {
		t.Fatalf("feed %+v, %v", st, err)
	}
	if st, err := screen.Open(context.Background(), "n1"); err != nil || st.Data.Title != "Summer deals" {
		t.Fatalf("open %+v, %v", st, err)
	}
}

func TestWelcome(t *testing.T) {
	if c := (WelcomeScreen{}).Content(); c.Title == "" || len(c.Slides) == 0 {
		t.Fatalf("welcome %+v", c)
	}
}
