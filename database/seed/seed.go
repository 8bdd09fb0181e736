// Package seed loads the sample catalog used in development.
package seed

import (
	"context"
	"fmt"
	"time"

	"tripnest/database/docstore"
	notificationRepo "tripnest/database/repository/notification"
	tripRepo "tripnest/database/repository/trip"
	"tripnest/models"
)

// Trips is the sample catalog.
var Trips = []models.Trip{
	{ID: "bali", Name: "Bali Escape", Description: "Temples, rice terraces and beaches.", Details: "7 days in Ubud and Seminyak with guided tours.", ImageURL: "https://images.example.com/trips/bali.jpg", Location: "Bali, Indonesia", Rating: 4.8, Price: 180, Featured: true, Category: "beach", DurationUnit: "7 days"},
	{ID: "swiss_alps", Name: "Swiss Alps Trek", Description: "Hut-to-hut hiking above Zermatt.", Details: "5 days, moderate difficulty, mountain guide included.", ImageURL: "https://images.example.com/trips/alps.jpg", Location: "Zermatt, Switzerland", Rating: 4.9, Price: 320, Featured: true, Category: "mountain", DurationUnit: "5 days"},
	{ID: "kyoto", Name: "Kyoto Culture Week", Description: "Shrines, tea houses and gardens.", Details: "6 days with a local host.", ImageURL: "https://images.example.com/trips/kyoto.jpg", Location: "Kyoto, Japan", Rating: 4.7, Price: 240, Category: "city", DurationUnit: "6 days"},
	{ID: "sahara", Name: "Sahara Nights", Description: "Camel treks and desert camps.", Details: "4 days from Marrakech.", ImageURL: "https://images.example.com/trips/sahara.jpg", Location: "Merzouga, Morocco", Rating: 4.5, Price: 150, Category: "adventure", DurationUnit: "4 days"},
}

// hotel is one seeded hotel. Key is the storage key, which for some hotels
// differs from the hotelId field.
type hotel struct {
	Key   string
	Hotel models.Hotel
	Types []roomType
}

type roomType struct {
	Type  models.RoomType
	Rooms []string
}

var hotels = []hotel{
	{
		Key:   "grand_bali_resort",
		Hotel: models.Hotel{ID: "grand_bali_resort", Name: "Grand Bali Resort", Description: "Beachfront resort in Seminyak.", Location: "Bali, Indonesia", Rating: 4.6, ImageURL: "https://images.example.com/hotels/grand-bali.jpg"},
		Types: []roomType{
			{Type: models.RoomType{ID: "deluxe", Name: "Deluxe Room", Description: "Garden view, king bed.", BasePrice: "$120/night"}, Rooms: []string{"101", "102", "103"}},
			{Type: models.RoomType{ID: "suite", Name: "Ocean Suite", Description: "Ocean view with terrace.", BasePrice: "$260/night"}, Rooms: []string{"501", "502"}},
		},
	},
	{
		// Stored under a CamelCase key without a hotelId field; found by spelling variants.
		Key:   "AlpineLodge",
		Hotel: models.Hotel{Name: "Alpine Lodge", Description: "Chalet at the foot of the Matterhorn.", Location: "Zermatt, Switzerland", Rating: 4.8},
		Types: []roomType{
			{Type: models.RoomType{ID: "standard", Name: "Standard Room", BasePrice: "CHF 180"}, Rooms: []string{"1", "2"}},
		},
	},
}

var notifications = []models.Notification{
	{ID: "welcome", Title: "Welcome to Tripnest", Description: "Start exploring trips.", Content: "Browse featured trips and save the ones you like.", Type: "info"},
	{ID: "summer-deals", Title: "Summer deals", Description: "Up to 20% off beach trips.", Content: "Book a beach trip before the end of the month.", Type: "promotion", RelatedTripID: "bali", ContentImage: []string{"https://images.example.com/promo/summer.jpg"}},
}

// Run writes the sample data. It overwrites documents with the same keys.
func Run(ctx context.Context, store docstore.Store) error {
	now := time.Now().UnixMilli()

	trips := tripRepo.NewTripRepo(store)
	for i := range Trips {
		trip := Trips[i]
		if err := trips.Insert(ctx, &trip); err != nil {
			return err
		}
	}

	for _, h := range hotels {
		data, err := docstore.Encode(h.Hotel)
		if err != nil {
			return err
		}
		if h.Hotel.ID == "" {
			delete(data, "hotelId")
		}
		if err := store.Set(ctx, "hotels", h.Key, data); err != nil {
			return fmt.Errorf("seed hotel %s: %w", h.Key, err)
		}
		for _, rt := range h.Types {
			typePath := docstore.Path("hotels", h.Key, "roomTypes")
			data, err := docstore.Encode(rt.Type)
			if err != nil {
				return err
			}
			if err := store.Set(ctx, typePath, rt.Type.ID, data); err != nil {
				return fmt.Errorf("seed room type %s/%s: %w", h.Key, rt.Type.ID, err)
			}
			roomPath := docstore.Path(typePath, rt.Type.ID, "rooms")
			for _, number := range rt.Rooms {
				room, err := docstore.Encode(models.Room{RoomNumber: number, Status: models.RoomAvailable})
				if err != nil {
					return err
				}
				if err := store.Set(ctx, roomPath, number, room); err != nil {
					return fmt.Errorf("seed room %s: %w", number, err)
				}
			}
		}
	}

	feed := notificationRepo.NewNotificationRepo(store)
	for i := range notifications {
		n := notifications[i]
		n.CreatedAt = now - int64(i)*int64(time.Hour/time.Millisecond)
		if err := feed.Insert(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}
