package screens

import (
	"context"

	savedRepo "tripnest/database/repository/saved"
	tripRepo "tripnest/database/repository/trip"
	"tripnest/models"
)

// HomeScreen shows the featured trips.
type HomeScreen struct {
	trips    tripRepo.TripRepository
	Featured *Holder[[]models.Trip]
}

func NewHomeScreen(trips tripRepo.TripRepository) *HomeScreen {
	return &HomeScreen{trips: trips, Featured: NewHolder[[]models.Trip]()}
}

func (s *HomeScreen) Load(ctx context.Context) (State[[]models.Trip], error) {
	return s.Featured.Run(ctx, s.trips.GetFeatured)
}

// TripListScreen lists the whole catalog or one category.
type TripListScreen struct {
	trips tripRepo.TripRepository
	Trips *Holder[[]models.Trip]
}

func NewTripListScreen(trips tripRepo.TripRepository) *TripListScreen {
	return &TripListScreen{trips: trips, Trips: NewHolder[[]models.Trip]()}
}

// Load lists every trip when category is empty.
func (s *TripListScreen) Load(ctx context.Context, category string) (State[[]models.Trip], error) {
	if category == "" {
		return s.Trips.Run(ctx, s.trips.GetAll)
	}
	return s.Trips.Run(ctx, func(ctx context.Context) ([]models.Trip, error) {
		return s.trips.GetByCategory(ctx, category)
	})
}

// TripDetail is a trip with the caller's saved flag.
type TripDetail struct {
	Trip  *models.Trip `json:"trip"`
	Saved bool         `json:"saved"`
}

// TripDetailScreen shows one trip and toggles it in the saved list.
type TripDetailScreen struct {
	trips  tripRepo.TripRepository
	saved  savedRepo.SavedTripsRepository
	Detail *Holder[TripDetail]
}

func NewTripDetailScreen(trips tripRepo.TripRepository, saved savedRepo.SavedTripsRepository) *TripDetailScreen {
	return &TripDetailScreen{trips: trips, saved: saved, Detail: NewHolder[TripDetail]()}
}

// Load fetches the trip. The saved flag never fails; it is false on error.
func (s *TripDetailScreen) Load(ctx context.Context, tripID string) (State[TripDetail], error) {
	return s.Detail.Run(ctx, func(ctx context.Context) (TripDetail, error) {
		trip, err := s.trips.GetByID(ctx, tripID)
		if err != nil {
			return TripDetail{}, err
		}
		return TripDetail{Trip: trip, Saved: s.saved.IsTripSaved(ctx, trip.ID)}, nil
	})
}

// SetSaved saves or removes the trip and reports the new flag.
func (s *TripDetailScreen) SetSaved(ctx context.Context, tripID string, saved bool) (State[TripDetail], error) {
	return s.Detail.Run(ctx, func(ctx context.Context) (TripDetail, error) {
		detail := s.Detail.State().Data
		if detail.Trip == nil || detail.Trip.ID != tripID {
			detail = TripDetail{Trip: &models.Trip{ID: tripID}}
		}
		var err error
		if saved {
			err = s.saved.SaveTrip(ctx, *detail.Trip)
		} else {
			err = s.saved.RemoveTrip(ctx, tripID)
		}
		if err != nil {
			return TripDetail{}, err
		}
		detail.Saved = saved
		return detail, nil
	})
}

// SavedTripsScreen keeps the live list of the caller's saved trips.
type SavedTripsScreen struct {
	saved savedRepo.SavedTripsRepository
	Trips *Holder[[]models.Trip]
}

func NewSavedTripsScreen(saved savedRepo.SavedTripsRepository) *SavedTripsScreen {
	return &SavedTripsScreen{saved: saved, Trips: NewHolder[[]models.Trip]()}
}

// Subscribe feeds every live update into Trips until ctx ends. The returned
// channel is closed once the subscription has stopped.
func (s *SavedTripsScreen) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	s.Trips.set(func(st *State[[]models.Trip]) { st.Loading = true })
	updates, err := s.saved.WatchSavedTrips(ctx)
	if err != nil {
		s.Trips.emit(nil, err)
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range updates {
			s.Trips.emit(u.Trips, u.Err)
		}
	}()
	return done, nil
}
