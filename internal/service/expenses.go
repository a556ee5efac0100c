package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tripsplit/internal/models"
)

// ExpenseInput carries the fields of a new expense as entered by the user.
type ExpenseInput struct {
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	PayerID     string   `json:"payer_id"`
	InvolvedIDs []string `json:"involved_ids"`
	Attachments []string `json:"attachments,omitempty"`
}

// AddExpense records a new expense on the trip. The input is validated in
// full before anything is touched; on a validation error the state is
// exactly as it was.
//
// The payer and involved ids are not checked against the member set. An
// expense may reference anyone; the ledger tolerates ids from outside the
// trip.
func (s *Service) AddExpense(ctx context.Context, tripID string, in ExpenseInput) (*models.Expense, error) {
	expense := &models.Expense{
		ID:          uuid.New().String(),
		TripID:      tripID,
		Title:       in.Title,
		Amount:      in.Amount,
		PayerID:     in.PayerID,
		InvolvedIDs: dedupIDs(in.InvolvedIDs),
		Timestamp:   time.Now().UnixMilli(),
		Attachments: in.Attachments,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := s.state.Trip(tripID)
	if trip == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}

	trip.Expenses.Put(expense)
	trip.Expenses.SortByRecency()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	slog.Info("expense added",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"involved", len(expense.InvolvedIDs),
	)
	return expense.Clone(), nil
}

// dedupIDs drops duplicate ids, keeping first occurrence.
func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
