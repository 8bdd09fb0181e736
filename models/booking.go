package models

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Payment statuses.
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// Booking represents a booking record. ID is "{userId}-{tripId}-{epochMillis}".
type Booking struct {
	ID                string            `firestore:"id" json:"id"`
	UserID            string            `firestore:"userId" json:"userId"`
	TripID            string            `firestore:"tripId" json:"tripId"`
	TripName          string            `firestore:"tripName" json:"tripName"`
	TripImageURL      string            `firestore:"tripImageUrl" json:"tripImageUrl"`
	NumberOfTravelers int               `firestore:"numberOfTravelers" json:"numberOfTravelers"`
	TotalPrice        float64           `firestore:"totalPrice" json:"totalPrice"`
	BookingDate       int64             `firestore:"bookingDate" json:"bookingDate"`
	TravelDate        int64             `firestore:"travelDate" json:"travelDate"`
	Status            string            `firestore:"status" json:"status"`
	PaymentStatus     string            `firestore:"paymentStatus" json:"paymentStatus"`
	ContactInfo       map[string]string `firestore:"contactInfo" json:"contactInfo"`
	SpecialRequests   string            `firestore:"specialRequests" json:"specialRequests"`
	HotelID           string            `firestore:"hotelId" json:"hotelId"`
	HotelName         string            `firestore:"hotelName" json:"hotelName"`
	RoomTypeID        string            `firestore:"roomTypeId" json:"roomTypeId"`
	RoomTypeName      string            `firestore:"roomTypeName" json:"roomTypeName"`
	RoomNumber        string            `firestore:"roomNumber" json:"roomNumber"`
	HotelBooked       bool              `firestore:"hotelBooked" json:"hotelBooked"`
}

// BookingRequest carries what the booking screen submits.
type BookingRequest struct {
	TripID            string            `json:"tripId"`
	TripName          string            `json:"tripName"`
	TripImageURL      string            `json:"tripImageUrl"`
	NumberOfTravelers int               `json:"numberOfTravelers"`
	PricePerPerson    float64           `json:"pricePerPerson"`
	TravelDate        int64             `json:"travelDate"`
	ContactInfo       map[string]string `json:"contactInfo,omitempty"`
	SpecialRequests   string            `json:"specialRequests,omitempty"`

	// Optional hotel selection.
	HotelID      string `json:"hotelId,omitempty"`
	HotelName    string `json:"hotelName,omitempty"`
	RoomTypeID   string `json:"roomTypeId,omitempty"`
	RoomTypeName string `json:"roomTypeName,omitempty"`
	RoomNumber   string `json:"roomNumber,omitempty"`
}

// WantsHotel reports whether a room should be booked alongside the trip.
func (r BookingRequest) WantsHotel() bool {
	return r.HotelID != "" && r.RoomTypeID != "" && r.RoomNumber != ""
}

// HotelSelection is the hotel part of a booking.
type HotelSelection struct {
	HotelID      string `firestore:"hotelId" json:"hotelId"`
	HotelName    string `firestore:"hotelName" json:"hotelName"`
	RoomTypeID   string `firestore:"roomTypeId" json:"roomTypeId"`
	RoomTypeName string `firestore:"roomTypeName" json:"roomTypeName"`
	RoomNumber   string `firestore:"roomNumber" json:"roomNumber"`
}

// BookingConfirmation is shown after a booking goes through.
type BookingConfirmation struct {
	Booking      Booking `json:"booking"`
	TripLocation string  `json:"tripLocation"`
	// HotelError is set when the trip was booked but the room could not be.
	HotelError string `json:"hotelError,omitempty"`
}
