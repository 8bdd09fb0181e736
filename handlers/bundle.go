package handlers

import (
	bookingRepo "tripnest/database/repository/booking"
	hotelRepo "tripnest/database/repository/hotel"
	notificationRepo "tripnest/database/repository/notification"
	savedRepo "tripnest/database/repository/saved"
	tripRepo "tripnest/database/repository/trip"
	"tripnest/services/auth"
	"tripnest/services/booking"
)

// HandlerBundle groups the dependencies of every endpoint. Each request gets
// its own screen holder built from them.
type HandlerBundle struct {
	Auth          auth.AuthService
	Trips         tripRepo.TripRepository
	Hotels        hotelRepo.HotelRepository
	Bookings      bookingRepo.BookingRepository
	Saved         savedRepo.SavedTripsRepository
	Notifications notificationRepo.NotificationRepository
	BookingSvc    booking.BookingService
}
