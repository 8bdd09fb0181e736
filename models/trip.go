package models

// Trip is a catalog entry of the trips collection. ID is the application id
// and doubles as the storage key.
type Trip struct {
	ID           string  `firestore:"id" json:"id"`
	Name         string  `firestore:"name" json:"name"`
	Description  string  `firestore:"description" json:"description"`
	Details      string  `firestore:"details" json:"details"`
	ImageURL     string  `firestore:"imageUrl" json:"imageUrl"`
	Location     string  `firestore:"location" json:"location"`
	Rating       float64 `firestore:"rating" json:"rating"`
	Price        float64 `firestore:"price" json:"price"`
	Featured     bool    `firestore:"featured" json:"featured"`
	Category     string  `firestore:"category" json:"category"`
	DurationUnit string  `firestore:"durationUnit" json:"durationUnit"`
	CreatedAt    int64   `firestore:"createdAt" json:"createdAt"`
}

// SavedTrip marks a trip as saved by a user. ID is "{userId}-{tripId}".
type SavedTrip struct {
	ID      string `firestore:"id" json:"id"`
	UserID  string `firestore:"userId" json:"userId"`
	TripID  string `firestore:"tripId" json:"tripId"`
	SavedAt int64  `firestore:"savedAt" json:"savedAt"`
}

// SavedTripID builds the composite key of a saved-trip record.
func SavedTripID(userID, tripID string) string {
	return userID + "-" + tripID
}
