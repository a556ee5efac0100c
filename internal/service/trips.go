package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tripsplit/internal/models"
)

// CreateTrip creates an empty trip with the given name, prepends it to the
// trip list, and selects it.
func (s *Service) CreateTrip(ctx context.Context, name string) (*models.Trip, error) {
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := &models.Trip{
		ID:   uuid.New().String(),
		Name: name,
		Date: time.Now().UnixMilli(),
	}
	s.state.PrependTrip(trip)
	s.state.Selected = trip.ID

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	slog.Info("trip created", "trip_id", trip.ID, "name", name)
	return trip.Clone(), nil
}

// Trips returns all trips, most recent first.
func (s *Service) Trips() []*models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Trip, len(s.state.Trips))
	for i, t := range s.state.Trips {
		out[i] = t.Clone()
	}
	return out
}

// Trip returns the trip with the given id.
func (s *Service) Trip(id string) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(id)
	if trip == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return trip.Clone(), nil
}

// RenameTrip changes the trip's display name.
func (s *Service) RenameTrip(ctx context.Context, id, name string) error {
	if name == "" {
		return &models.ValidationError{Field: "name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(id)
	if trip == nil {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	trip.Name = name
	return s.persist(ctx)
}

// SetTripPhoto replaces the trip's cover image payload.
func (s *Service) SetTripPhoto(ctx context.Context, id, photo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(id)
	if trip == nil {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	trip.Photo = photo
	return s.persist(ctx)
}

// AddMember adds an existing friend to the trip's member set. Adding a
// member twice is a no-op.
func (s *Service) AddMember(ctx context.Context, tripID, friendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	if s.state.Friend(friendID) == nil {
		return fmt.Errorf("%w: %s", ErrFriendNotFound, friendID)
	}
	if !trip.AddMember(friendID) {
		return nil
	}
	return s.persist(ctx)
}

// QuickAddMember creates a bare friend profile with just a name and adds it
// to the trip in one step. This is the in-flow path for adding someone who
// is not in the friend list yet.
func (s *Service) QuickAddMember(ctx context.Context, tripID, name string) (*models.Friend, error) {
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}

	friend := &models.Friend{ID: uuid.New().String(), Name: name}
	s.state.AddFriend(friend)
	trip.AddMember(friend.ID)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	slog.Info("member quick-added", "trip_id", tripID, "friend_id", friend.ID)
	return friend.Clone(), nil
}

// SelectTrip marks the trip as the currently selected one.
func (s *Service) SelectTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Trip(id) == nil {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	s.state.Selected = id
	return s.persist(ctx)
}

// SelectedTripID returns the id of the currently selected trip, or empty
// when none is selected.
func (s *Service) SelectedTripID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Selected
}
