package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

// Collection holds booking records keyed by booking id.
const Collection = "bookings"

// BookingRepository manages the current user's bookings.
type BookingRepository interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	ListForCurrentUser(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) error
	MarkHotelBooked(ctx context.Context, id string, hotel models.HotelSelection) error
}

// DocBookingRepo implements BookingRepository on a document store.
type DocBookingRepo struct {
	store docstore.Store
	now   func() time.Time
}

func NewBookingRepo(store docstore.Store) *DocBookingRepo {
	return &DocBookingRepo{store: store, now: time.Now}
}

// SetClock overrides the time source used for ids and booking dates.
func (r *DocBookingRepo) SetClock(now func() time.Time) {
	r.now = now
}

// BookingID builds "{userId}-{tripId}-{epochMillis}".
func BookingID(userID, tripID string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", userID, tripID, at.UnixMilli())
}

// Create stores a confirmed, paid booking for the current user. The total is
// the per-person price times the number of travelers.
func (r *DocBookingRepo) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if req.TripID == "" {
		return nil, utils.InvalidArgument("trip id is required")
	}
	if req.NumberOfTravelers < 1 {
		return nil, utils.InvalidArgument("number of travelers must be at least 1")
	}

	now := r.now()
	booking := &models.Booking{
		ID:                BookingID(uid, req.TripID, now),
		UserID:            uid,
		TripID:            req.TripID,
		TripName:          req.TripName,
		TripImageURL:      req.TripImageURL,
		NumberOfTravelers: req.NumberOfTravelers,
		TotalPrice:        req.PricePerPerson * float64(req.NumberOfTravelers),
		BookingDate:       now.UnixMilli(),
		TravelDate:        req.TravelDate,
		Status:            models.BookingConfirmed,
		PaymentStatus:     models.PaymentPaid,
		ContactInfo:       req.ContactInfo,
		SpecialRequests:   req.SpecialRequests,
		HotelID:           req.HotelID,
		HotelName:         req.HotelName,
		RoomTypeID:        req.RoomTypeID,
		RoomTypeName:      req.RoomTypeName,
		RoomNumber:        req.RoomNumber,
	}
	if booking.ContactInfo == nil {
		booking.ContactInfo = map[string]string{}
	}

	data, err := docstore.Encode(booking)
	if err != nil {
		return nil, utils.Wrap(err, "failed to encode booking")
	}
	if err := r.store.Set(ctx, Collection, booking.ID, data); err != nil {
		return nil, utils.Wrap(err, "failed to create booking")
	}
	return booking, nil
}

// ListForCurrentUser returns the caller's bookings, newest first.
func (r *DocBookingRepo) ListForCurrentUser(ctx context.Context) ([]models.Booking, error) {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	q := docstore.Where("userId", uid).Order("bookingDate", true)
	docs, err := r.store.Find(ctx, Collection, q)
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch bookings")
	}
	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := decodeBooking(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (r *DocBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("booking %s not found", id)
		}
		return nil, utils.Wrap(err, "failed to fetch booking %s", id)
	}
	return decodeBooking(*doc)
}

// Cancel marks the caller's booking cancelled. Cancelling twice is allowed.
func (r *DocBookingRepo) Cancel(ctx context.Context, id string) error {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return err
	}
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.UserID != uid {
		return utils.PermissionDenied("booking %s belongs to another user", id)
	}
	if err := r.store.Update(ctx, Collection, id, map[string]any{"status": models.BookingCancelled}); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return utils.NotFound("booking %s not found", id)
		}
		return utils.Wrap(err, "failed to cancel booking %s", id)
	}
	return nil
}

// MarkHotelBooked records the booked room on the booking.
func (r *DocBookingRepo) MarkHotelBooked(ctx context.Context, id string, hotel models.HotelSelection) error {
	fields, err := docstore.Encode(hotel)
	if err != nil {
		return utils.Wrap(err, "failed to encode hotel selection")
	}
	fields["hotelBooked"] = true
	if err := r.store.Update(ctx, Collection, id, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return utils.NotFound("booking %s not found", id)
		}
		return utils.Wrap(err, "failed to update booking %s", id)
	}
	return nil
}

func decodeBooking(doc docstore.Document) (*models.Booking, error) {
	var b models.Booking
	if err := docstore.Decode(doc.Data, &b); err != nil {
		return nil, utils.Wrap(err, "failed to decode booking %s", doc.Key)
	}
	if b.ID == "" {
		b.ID = doc.Key
	}
	return &b, nil
}
