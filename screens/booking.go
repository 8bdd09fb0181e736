package screens

import (
	"context"

	bookingRepo "tripnest/database/repository/booking"
	hotelRepo "tripnest/database/repository/hotel"
	"tripnest/models"
	"tripnest/services/auth"
	"tripnest/services/booking"
)

// BookingScreen submits a booking and shows its confirmation.
type BookingScreen struct {
	svc          booking.BookingService
	Confirmation *Holder[*models.BookingConfirmation]
}

func NewBookingScreen(svc booking.BookingService) *BookingScreen {
	return &BookingScreen{svc: svc, Confirmation: NewHolder[*models.BookingConfirmation]()}
}

func (s *BookingScreen) Confirm(ctx context.Context, req models.BookingRequest) (State[*models.BookingConfirmation], error) {
	return s.Confirmation.Run(ctx, func(ctx context.Context) (*models.BookingConfirmation, error) {
		return s.svc.Confirm(ctx, req)
	})
}

// HotelScreen shows a hotel and its room types.
type HotelScreen struct {
	hotels    hotelRepo.HotelRepository
	Hotel     *Holder[*models.Hotel]
	RoomTypes *Holder[[]models.RoomType]
}

func NewHotelScreen(hotels hotelRepo.HotelRepository) *HotelScreen {
	return &HotelScreen{
		hotels:    hotels,
		Hotel:     NewHolder[*models.Hotel](),
		RoomTypes: NewHolder[[]models.RoomType](),
	}
}

func (s *HotelScreen) LoadHotel(ctx context.Context, hotelID string) (State[*models.Hotel], error) {
	return s.Hotel.Run(ctx, func(ctx context.Context) (*models.Hotel, error) {
		return s.hotels.GetHotelByID(ctx, hotelID)
	})
}

func (s *HotelScreen) LoadRoomTypes(ctx context.Context, hotelID string) (State[[]models.RoomType], error) {
	return s.RoomTypes.Run(ctx, func(ctx context.Context) ([]models.RoomType, error) {
		return s.hotels.ListRoomTypes(ctx, hotelID)
	})
}

// RoomSelectionScreen lists free rooms of a type and books one.
type RoomSelectionScreen struct {
	hotels hotelRepo.HotelRepository
	Rooms  *Holder[[]models.Room]
	Booked *Holder[*models.Room]
}

func NewRoomSelectionScreen(hotels hotelRepo.HotelRepository) *RoomSelectionScreen {
	return &RoomSelectionScreen{
		hotels: hotels,
		Rooms:  NewHolder[[]models.Room](),
		Booked: NewHolder[*models.Room](),
	}
}

func (s *RoomSelectionScreen) LoadRooms(ctx context.Context, hotelID, roomTypeID string) (State[[]models.Room], error) {
	return s.Rooms.Run(ctx, func(ctx context.Context) ([]models.Room, error) {
		return s.hotels.ListAvailableRooms(ctx, hotelID, roomTypeID)
	})
}

func (s *RoomSelectionScreen) BookRoom(ctx context.Context, hotelID, roomTypeID, roomNumber string) (State[*models.Room], error) {
	return s.Booked.Run(ctx, func(ctx context.Context) (*models.Room, error) {
		return s.hotels.BookRoom(ctx, hotelID, roomTypeID, roomNumber)
	})
}

// ProfileScreen shows the caller and their bookings.
type ProfileScreen struct {
	auth     auth.AuthService
	bookings bookingRepo.BookingRepository
	svc      booking.BookingService
	User     *Holder[*models.User]
	Bookings *Holder[[]models.Booking]
}

func NewProfileScreen(authSvc auth.AuthService, bookings bookingRepo.BookingRepository, svc booking.BookingService) *ProfileScreen {
	return &ProfileScreen{
		auth:     authSvc,
		bookings: bookings,
		svc:      svc,
		User:     NewHolder[*models.User](),
		Bookings: NewHolder[[]models.Booking](),
	}
}

func (s *ProfileScreen) LoadUser(ctx context.Context) (State[*models.User], error) {
	return s.User.Run(ctx, s.auth.CurrentUser)
}

func (s *ProfileScreen) LoadBookings(ctx context.Context) (State[[]models.Booking], error) {
	return s.Bookings.Run(ctx, s.bookings.ListForCurrentUser)
}

// CancelBooking cancels and marks the booking cancelled in the shown list.
func (s *ProfileScreen) CancelBooking(ctx context.Context, bookingID string) (State[[]models.Booking], error) {
	return s.Bookings.Run(ctx, func(ctx context.Context) ([]models.Booking, error) {
		if err := s.svc.Cancel(ctx, bookingID); err != nil {
			return nil, err
		}
		current := s.Bookings.State().Data
		list := make([]models.Booking, len(current))
		copy(list, current)
		for i := range list {
			if list[i].ID == bookingID {
				list[i].Status = models.BookingCancelled
			}
		}
		return list, nil
	})
}
