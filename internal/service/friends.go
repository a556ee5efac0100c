package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tripsplit/internal/models"
	"tripsplit/internal/paycode"
)

// FriendInput carries the editable fields of a friend profile.
type FriendInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Photo  string `json:"photo,omitempty"`
	QRCode string `json:"qr_code,omitempty"`
}

// PaymentCode is a displayable payment artifact for a friend: either their
// own uploaded QR image or a payload derived from their phone number.
type PaymentCode struct {
	// Kind is "image" for an uploaded QR image and "payload" for a derived
	// tag-length-value string the caller renders as a QR code.
	Kind string `json:"kind"`

	// Data is the opaque image payload or the derived payload string.
	Data string `json:"data"`
}

// Friends returns the global friend list in insertion order.
func (s *Service) Friends() []*models.Friend {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Friend, len(s.state.Friends))
	for i, f := range s.state.Friends {
		out[i] = f.Clone()
	}
	return out
}

// AddFriend creates a friend profile. The phone number is normalized to bare
// digits before it is stored.
func (s *Service) AddFriend(ctx context.Context, in FriendInput) (*models.Friend, error) {
	if in.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friend := &models.Friend{
		ID:     uuid.New().String(),
		Name:   in.Name,
		Phone:  paycode.NormalizePhone(in.Phone),
		Photo:  in.Photo,
		QRCode: in.QRCode,
	}
	s.state.AddFriend(friend)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	slog.Info("friend added", "friend_id", friend.ID, "name", friend.Name)
	return friend.Clone(), nil
}

// UpdateFriend replaces the friend's profile fields. Edits are
// last-writer-wins; whatever was there before is overwritten.
func (s *Service) UpdateFriend(ctx context.Context, id string, in FriendInput) (*models.Friend, error) {
	if in.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friend := s.state.Friend(id)
	if friend == nil {
		return nil, fmt.Errorf("%w: %s", ErrFriendNotFound, id)
	}
	friend.Name = in.Name
	friend.Phone = paycode.NormalizePhone(in.Phone)
	friend.Photo = in.Photo
	friend.QRCode = in.QRCode

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return friend.Clone(), nil
}

// DeleteFriend removes the friend from the global list. Trips keep their
// references to the id; those display as a placeholder from then on.
func (s *Service) DeleteFriend(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.RemoveFriend(id) {
		return fmt.Errorf("%w: %s", ErrFriendNotFound, id)
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.Info("friend deleted", "friend_id", id)
	return nil
}

// FriendPaymentCode returns the payment artifact to display for a friend,
// optionally pre-filled with an amount. An uploaded QR image always wins
// over a phone-derived payload; the amount only applies to the derived form.
func (s *Service) FriendPaymentCode(friendID string, amount float64) (*PaymentCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	friend := s.state.Friend(friendID)
	if friend == nil {
		return nil, fmt.Errorf("%w: %s", ErrFriendNotFound, friendID)
	}
	if friend.QRCode != "" {
		return &PaymentCode{Kind: "image", Data: friend.QRCode}, nil
	}
	if friend.Phone != "" {
		return &PaymentCode{Kind: "payload", Data: paycode.ForPhone(friend.Phone, amount)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoPaymentRoute, friendID)
}
