// Package service implements the application operations over the shared
// state: trip and friend management, expense entry, sharing, and settlement.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

var (
	// ErrTripNotFound reports an operation on a trip id that is not in the
	// state.
	ErrTripNotFound = errors.New("trip not found")

	// ErrFriendNotFound reports an operation on a friend id that is not in
	// the state.
	ErrFriendNotFound = errors.New("friend not found")

	// ErrNoPaymentRoute reports a friend with neither a payment QR image nor
	// a phone number to derive one from.
	ErrNoPaymentRoute = errors.New("friend has no payment code or phone number")
)

// Service owns the in-memory application state and writes it through the
// persistence gateway after every mutation.
//
// The state operations themselves assume exclusive access; the mutex is what
// grants it, held for the full duration of every call. Methods hand out deep
// copies, never live pointers into the state.
type Service struct {
	mu    sync.Mutex
	state *models.State
	store storage.Store
}

// New creates a Service over the given state. A nil state starts empty.
func New(store storage.Store, state *models.State) *Service {
	if state == nil {
		state = models.NewState()
	}
	return &Service{state: state, store: store}
}

// persist writes the whole state snapshot through the gateway. Called with
// the lock held, after the in-memory mutation has been applied.
func (s *Service) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.state); err != nil {
		slog.Error("state save failed", "error", err)
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// friendName resolves a friend id to its display name. Dangling ids, which
// are legal everywhere a friend is referenced, resolve to a placeholder.
func (s *Service) friendName(id string) string {
	if f := s.state.Friend(id); f != nil {
		return f.Name
	}
	return "Unknown"
}
