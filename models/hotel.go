package models

// Room statuses.
const (
	RoomAvailable = "available"
	RoomBooked    = "booked"
)

// Hotel is a document of the hotels collection. ID is stored as "hotelId" and
// is not guaranteed to equal the storage key.
type Hotel struct {
	ID          string  `firestore:"hotelId" json:"id"`
	Name        string  `firestore:"name" json:"name"`
	Description string  `firestore:"description" json:"description"`
	ImageURL    string  `firestore:"imageUrl" json:"imageUrl"`
	Location    string  `firestore:"location" json:"location"`
	Rating      float64 `firestore:"rating" json:"rating"`
}

// RoomType lives under hotels/{hotelKey}/roomTypes. BasePrice is free text.
type RoomType struct {
	ID          string `firestore:"id" json:"id"`
	Name        string `firestore:"name" json:"name"`
	Description string `firestore:"description" json:"description"`
	BasePrice   string `firestore:"basePrice" json:"basePrice"`
	ImageURL    string `firestore:"imageUrl" json:"imageUrl"`
}

// Room lives under hotels/{hotelKey}/roomTypes/{typeKey}/rooms.
type Room struct {
	RoomNumber string `firestore:"roomNumber" json:"roomNumber"`
	Status     string `firestore:"status" json:"status"`
	BookedAt   int64  `firestore:"bookedAt,omitempty" json:"bookedAt,omitempty"`
}
