package booking

import (
	"context"
	"fmt"

	"tripnest/models"

	"go.uber.org/zap"
)

// Confirm creates the booking first. The room is booked afterwards and is not
// transactional with it: a room failure leaves the trip booked with
// hotelBooked=false and is reported in HotelError.
func (s *DefaultBookingService) Confirm(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	booking, err := s.Bookings.Create(ctx, req)
	if err != nil {
		s.Metrics.ObserveError("booking.create", err)
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.BookingsCreated.Inc()
	}
	s.Logger.Info("Booking confirmed",
		zap.String("bookingId", booking.ID), zap.String("tripId", booking.TripID),
		zap.Int("travelers", booking.NumberOfTravelers), zap.Float64("total", booking.TotalPrice))

	confirmation := &models.BookingConfirmation{}
	if req.WantsHotel() {
		if err := s.bookHotel(ctx, booking, req); err != nil {
			confirmation.HotelError = err.Error()
		}
	}
	confirmation.Booking = *booking

	trip, err := s.Trips.GetByID(ctx, booking.TripID)
	if err != nil {
		s.Logger.Warn("Confirm: trip lookup failed", zap.String("tripId", booking.TripID), zap.Error(err))
	} else {
		confirmation.TripLocation = trip.Location
	}

	s.notify(ctx, *booking)
	return confirmation, nil
}

func (s *DefaultBookingService) bookHotel(ctx context.Context, booking *models.Booking, req models.BookingRequest) error {
	if _, err := s.Hotels.BookRoom(ctx, req.HotelID, req.RoomTypeID, req.RoomNumber); err != nil {
		s.Metrics.ObserveError("hotel.bookRoom", err)
		s.Logger.Warn("Confirm: room booking failed",
			zap.String("bookingId", booking.ID), zap.String("hotelId", req.HotelID),
			zap.String("roomNumber", req.RoomNumber), zap.Error(err))
		return err
	}
	if s.Metrics != nil {
		s.Metrics.RoomsBooked.Inc()
	}

	sel := models.HotelSelection{
		HotelID:      req.HotelID,
		HotelName:    req.HotelName,
		RoomTypeID:   req.RoomTypeID,
		RoomTypeName: req.RoomTypeName,
		RoomNumber:   req.RoomNumber,
	}
	if err := s.Bookings.MarkHotelBooked(ctx, booking.ID, sel); err != nil {
		s.Metrics.ObserveError("booking.markHotelBooked", err)
		s.Logger.Error("Confirm: room booked but booking not updated",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return err
	}
	booking.HotelBooked = true
	return nil
}

// notify sends the confirmation push and schedules the travel reminder. Failures
// are logged only.
func (s *DefaultBookingService) notify(ctx context.Context, booking models.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.Notifier != nil {
		body := fmt.Sprintf("Your trip %s for %d traveler(s) is confirmed.", booking.TripName, booking.NumberOfTravelers)
		data := map[string]string{"bookingId": booking.ID, "type": "booking"}
		if err := s.Notifier.SendUserPushNotification(ctx, booking.UserID, "Booking confirmed", body, data); err != nil {
			s.Logger.Warn("Confirm: push failed", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, booking); err != nil {
			s.Logger.Warn("Confirm: reminder not scheduled", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	if err := s.Bookings.Cancel(ctx, bookingID); err != nil {
		s.Metrics.ObserveError("booking.cancel", err)
		return err
	}
	if s.Metrics != nil {
		s.Metrics.BookingsCanceled.Inc()
	}
	s.Logger.Info("Booking cancelled", zap.String("bookingId", bookingID))
	return nil
}

var _ BookingService = (*DefaultBookingService)(nil)
