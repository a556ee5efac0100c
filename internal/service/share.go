package service

import (
	"context"
	"fmt"
	"log/slog"

	"tripsplit/internal/codec"
	"tripsplit/internal/merge"
	"tripsplit/internal/models"
)

// ExportTrip encodes the trip as a portable share token, embedding a
// snapshot of the member profiles the sender has on file. When
// includePrivate is false, solo personal expenses are withheld.
func (s *Service) ExportTrip(tripID string, includePrivate bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return "", fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}

	profiles := make([]*models.Friend, 0, len(trip.Members))
	for _, id := range trip.Members {
		if f := s.state.Friend(id); f != nil {
			profiles = append(profiles, f)
		}
	}

	token, err := codec.Encode(trip, profiles, includePrivate)
	if err != nil {
		slog.Error("trip export failed", "trip_id", tripID, "error", err)
		return "", err
	}
	slog.Info("trip exported", "trip_id", tripID, "include_private", includePrivate)
	return token, nil
}

// ImportTrip decodes a share token and reconciles the carried trip into the
// state: embedded member profiles are adopted when unknown, then the trip is
// merged. The token is validated in full before anything mutates; a bad
// token leaves the state untouched.
func (s *Service) ImportTrip(ctx context.Context, token string) (string, error) {
	payload, err := codec.Decode(token)
	if err != nil {
		slog.Warn("trip import rejected", "error", err)
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range payload.Members {
		if s.state.AdoptFriend(f) {
			slog.Debug("friend adopted from token", "friend_id", f.ID)
		}
	}
	tripID := merge.Apply(s.state, payload.Trip)

	if err := s.persist(ctx); err != nil {
		return "", err
	}
	slog.Info("trip imported", "trip_id", tripID, "expenses", payload.Trip.Expenses.Len())
	return tripID, nil
}
