package hotelRepo

import (
	"context"
	"errors"
	"time"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

const (
	HotelsCollection    = "hotels"
	roomTypesCollection = "roomTypes"
	roomsCollection     = "rooms"
)

func roomTypesPath(hotelKey string) string {
	return docstore.Path(HotelsCollection, hotelKey, roomTypesCollection)
}

func roomsPath(hotelKey, typeKey string) string {
	return docstore.Path(HotelsCollection, hotelKey, roomTypesCollection, typeKey, roomsCollection)
}

// HotelRepository serves hotels, their room types and rooms.
type HotelRepository interface {
	ResolveHotel(ctx context.Context, hotelID string) (string, error)
	GetHotelByID(ctx context.Context, hotelID string) (*models.Hotel, error)
	ListRoomTypes(ctx context.Context, hotelID string) ([]models.RoomType, error)
	ListAvailableRooms(ctx context.Context, hotelID, roomTypeID string) ([]models.Room, error)
	BookRoom(ctx context.Context, hotelID, roomTypeID, roomNumber string) (*models.Room, error)
}

// DocHotelRepo implements HotelRepository on a document store.
type DocHotelRepo struct {
	store         docstore.Store
	autoProvision bool
	now           func() time.Time
}

// Option configures a DocHotelRepo.
type Option func(*DocHotelRepo)

// WithAutoProvision makes BookRoom add an already booked record when no
// available room with that number exists, instead of failing.
func WithAutoProvision(enabled bool) Option {
	return func(r *DocHotelRepo) { r.autoProvision = enabled }
}

// WithClock overrides the time source used for bookedAt.
func WithClock(now func() time.Time) Option {
	return func(r *DocHotelRepo) { r.now = now }
}

func NewHotelRepo(store docstore.Store, opts ...Option) *DocHotelRepo {
	r := &DocHotelRepo{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *DocHotelRepo) GetHotelByID(ctx context.Context, hotelID string) (*models.Hotel, error) {
	key, err := r.ResolveHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, HotelsCollection, key)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("hotel %s not found", hotelID)
		}
		return nil, utils.Wrap(err, "failed to fetch hotel %s", hotelID)
	}
	var hotel models.Hotel
	if err := docstore.Decode(doc.Data, &hotel); err != nil {
		return nil, utils.Wrap(err, "failed to decode hotel %s", hotelID)
	}
	if hotel.ID == "" {
		hotel.ID = key
	}
	return &hotel, nil
}

// ListRoomTypes returns an empty list, not an error, when the hotel has no
// room types under any of its spellings.
func (r *DocHotelRepo) ListRoomTypes(ctx context.Context, hotelID string) ([]models.RoomType, error) {
	keys := make([]string, 0, 4)
	key, err := r.ResolveHotel(ctx, hotelID)
	switch {
	case err == nil:
		keys = append(keys, key)
	case !errors.Is(err, utils.ErrNotFound):
		return nil, err
	}
	for _, v := range append([]string{hotelID}, keyVariants(hotelID)...) {
		if v != key {
			keys = append(keys, v)
		}
	}

	for _, k := range keys {
		docs, err := r.store.Find(ctx, roomTypesPath(k), docstore.Query{})
		if err != nil {
			return nil, utils.Wrap(err, "failed to fetch room types of hotel %s", hotelID)
		}
		if len(docs) == 0 {
			continue
		}
		types := make([]models.RoomType, 0, len(docs))
		for _, doc := range docs {
			var rt models.RoomType
			if err := docstore.Decode(doc.Data, &rt); err != nil {
				return nil, utils.Wrap(err, "failed to decode room type %s", doc.Key)
			}
			if rt.ID == "" {
				rt.ID = doc.Key
			}
			types = append(types, rt)
		}
		return types, nil
	}
	return []models.RoomType{}, nil
}

func (r *DocHotelRepo) ListAvailableRooms(ctx context.Context, hotelID, roomTypeID string) ([]models.Room, error) {
	hotelKey, err := r.ResolveHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	typeKey, err := r.resolveRoomType(ctx, hotelKey, roomTypeID)
	if err != nil {
		return nil, err
	}
	q := docstore.Where("status", models.RoomAvailable).Order("roomNumber", false)
	docs, err := r.store.Find(ctx, roomsPath(hotelKey, typeKey), q)
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch rooms of %s/%s", hotelID, roomTypeID)
	}
	rooms := make([]models.Room, 0, len(docs))
	for _, doc := range docs {
		room, err := decodeRoom(doc)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

// BookRoom marks an available room booked. An already booked room is a
// conflict; an unknown room number is not found unless auto-provisioning is on.
func (r *DocHotelRepo) BookRoom(ctx context.Context, hotelID, roomTypeID, roomNumber string) (*models.Room, error) {
	if roomNumber == "" {
		return nil, utils.InvalidArgument("room number is required")
	}
	if r.autoProvision {
		return r.provisionRoom(ctx, hotelID, roomTypeID, roomNumber)
	}
	hotelKey, err := r.ResolveHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	typeKey, err := r.resolveRoomType(ctx, hotelKey, roomTypeID)
	if err != nil {
		return nil, err
	}
	path := roomsPath(hotelKey, typeKey)

	docs, err := r.store.Find(ctx, path, docstore.Where("roomNumber", roomNumber).Take(1))
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch room %s", roomNumber)
	}
	if len(docs) == 0 {
		return nil, utils.NotFound("room %s not found", roomNumber)
	}
	room, err := decodeRoom(docs[0])
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomBooked {
		return nil, utils.Conflict("room %s is already booked", roomNumber)
	}
	return r.markBooked(ctx, path, docs[0].Key, room)
}

// provisionRoom books an available room with that number, or adds a new
// record already booked. Unresolved hotel and room type ids are used as keys.
func (r *DocHotelRepo) provisionRoom(ctx context.Context, hotelID, roomTypeID, roomNumber string) (*models.Room, error) {
	hotelKey, err := r.ResolveHotel(ctx, hotelID)
	if errors.Is(err, utils.ErrNotFound) {
		hotelKey = hotelID
	} else if err != nil {
		return nil, err
	}
	typeKey, err := r.resolveRoomType(ctx, hotelKey, roomTypeID)
	if errors.Is(err, utils.ErrNotFound) {
		typeKey = roomTypeID
	} else if err != nil {
		return nil, err
	}
	path := roomsPath(hotelKey, typeKey)

	q := docstore.Where("roomNumber", roomNumber).And("status", models.RoomAvailable).Take(1)
	docs, err := r.store.Find(ctx, path, q)
	if err != nil {
		return nil, utils.Wrap(err, "failed to fetch room %s", roomNumber)
	}
	if len(docs) > 0 {
		room, err := decodeRoom(docs[0])
		if err != nil {
			return nil, err
		}
		return r.markBooked(ctx, path, docs[0].Key, room)
	}

	room := &models.Room{RoomNumber: roomNumber, Status: models.RoomBooked, BookedAt: r.now().UnixMilli()}
	data, err := docstore.Encode(room)
	if err != nil {
		return nil, utils.Wrap(err, "failed to encode room %s", roomNumber)
	}
	if _, err := r.store.Add(ctx, path, data); err != nil {
		return nil, utils.Wrap(err, "failed to add room %s", roomNumber)
	}
	return room, nil
}

func (r *DocHotelRepo) markBooked(ctx context.Context, path, key string, room *models.Room) (*models.Room, error) {
	bookedAt := r.now().UnixMilli()
	fields := map[string]any{"status": models.RoomBooked, "bookedAt": bookedAt}
	if err := r.store.Update(ctx, path, key, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("room %s not found", room.RoomNumber)
		}
		return nil, utils.Wrap(err, "failed to book room %s", room.RoomNumber)
	}
	room.Status = models.RoomBooked
	room.BookedAt = bookedAt
	return room, nil
}

func decodeRoom(doc docstore.Document) (*models.Room, error) {
	var room models.Room
	if err := docstore.Decode(doc.Data, &room); err != nil {
		return nil, utils.Wrap(err, "failed to decode room %s", doc.Key)
	}
	if room.RoomNumber == "" {
		room.RoomNumber = doc.Key
	}
	return &room, nil
}
