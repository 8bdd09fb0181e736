package models

// Notification is an entry of the read-only notifications feed.
type Notification struct {
	ID            string   `firestore:"id" json:"id"`
	Title         string   `firestore:"title" json:"title"`
	Description   string   `firestore:"description" json:"description"`
	Content       string   `firestore:"content" json:"content"`
	Image         string   `firestore:"image" json:"image"`
	ContentImage  []string `firestore:"contentImage" json:"contentImage"`
	Type          string   `firestore:"type" json:"type"`
	CreatedAt     int64    `firestore:"createdAt" json:"createdAt"`
	RelatedTripID string   `firestore:"relatedTripId" json:"relatedTripId"`
}

// ReminderPayload is the body of a scheduled travel reminder task.
type ReminderPayload struct {
	UserID     string `json:"userId"`
	BookingID  string `json:"bookingId"`
	TripName   string `json:"tripName"`
	TravelDate int64  `json:"travelDate"`
}
