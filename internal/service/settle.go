package service

import (
	"fmt"
	"sort"

	"tripsplit/internal/calculator"
)

// MemberBalance is one member's net position with their display name
// resolved.
type MemberBalance struct {
	FriendID string  `json:"friend_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// PlannedTransfer is one suggested settlement payment with both display
// names resolved.
type PlannedTransfer struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}

// Balances returns every member's net position for the trip, creditors
// first. Ids referenced by expenses but missing from the friend list appear
// with a placeholder name.
func (s *Service) Balances(tripID string) ([]MemberBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}

	balances := calculator.Balances(trip)
	out := make([]MemberBalance, 0, len(balances))
	for id, amount := range balances {
		out = append(out, MemberBalance{
			FriendID: id,
			Name:     s.friendName(id),
			Amount:   amount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].FriendID < out[j].FriendID
	})
	return out, nil
}

// SettlementPlan returns the suggested transfers that settle the trip's
// balances. Returns calculator.ErrNothingToSettle when everyone is already
// even.
func (s *Service) SettlementPlan(tripID string) ([]PlannedTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}

	transfers, err := calculator.Plan(calculator.Balances(trip))
	if err != nil {
		return nil, err
	}

	out := make([]PlannedTransfer, len(transfers))
	for i, t := range transfers {
		out[i] = PlannedTransfer{
			FromID:   t.FromID,
			FromName: s.friendName(t.FromID),
			ToID:     t.ToID,
			ToName:   s.friendName(t.ToID),
			Amount:   t.Amount,
		}
	}
	return out, nil
}
