package booking

import (
	"context"
	"time"

	bookingRepo "tripnest/database/repository/booking"
	hotelRepo "tripnest/database/repository/hotel"
	tripRepo "tripnest/database/repository/trip"
	"tripnest/models"
	"tripnest/services/notification"
	"tripnest/services/tasks"
	"tripnest/utils"

	"go.uber.org/zap"
)

// BookingService runs the booking flow that spans several repositories.
type BookingService interface {
	// Confirm books the trip and, when a room is selected, the room.
	Confirm(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error)
	// Cancel cancels one of the caller's bookings.
	Cancel(ctx context.Context, bookingID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Hotels    hotelRepo.HotelRepository
	Trips     tripRepo.TripRepository
	Notifier  notification.NotificationService
	Reminders tasks.ReminderScheduler
	Metrics   *utils.Metrics
	Logger    *zap.Logger
}

// NewBookingService wires the flow. Notifier, Reminders and Metrics may be nil.
func NewBookingService(
	bookings bookingRepo.BookingRepository,
	hotels hotelRepo.HotelRepository,
	trips tripRepo.TripRepository,
	notifier notification.NotificationService,
	reminders tasks.ReminderScheduler,
	metrics *utils.Metrics,
	logger *zap.Logger,
) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Bookings:  bookings,
		Hotels:    hotels,
		Trips:     trips,
		Notifier:  notifier,
		Reminders: reminders,
		Metrics:   metrics,
		Logger:    logger,
	}
}

// sideEffectTimeout bounds the push and reminder calls that follow a booking.
const sideEffectTimeout = 5 * time.Second
