package models

import (
	"fmt"
	"math"
)

// Expense represents a single payment event within a trip: one payer fronts
// an amount that a set of involved members share equally.
//
// Expenses are immutable once recorded. A sync can replace the whole value
// stored under an id, but individual fields are never edited in place.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the id of the trip the expense belongs to.
	TripID string `json:"trip_id"`

	// Title is the human-readable description (e.g. "Dinner", "Fuel").
	Title string `json:"title"`

	// Amount is the full amount paid, in the group's implicit currency.
	Amount float64 `json:"amount"`

	// PayerID is the id of the member who fronted the money.
	PayerID string `json:"payer_id"`

	// InvolvedIDs holds the ids of the members sharing the expense.
	// It behaves as a set and is never empty. The payer may or may not be
	// included; a payer-only set marks a private expense.
	InvolvedIDs []string `json:"involved_ids"`

	// Timestamp is the recording instant in Unix milliseconds. It drives the
	// display order of a trip's expenses.
	Timestamp int64 `json:"timestamp"`

	// Attachments are opaque encoded receipt images.
	Attachments []string `json:"attachments,omitempty"`
}

// IsPrivate reports whether the expense is a solo personal-tracking entry:
// the payer is the only involved member. Private expenses are withheld from
// shared exports unless the user opts in.
func (e *Expense) IsPrivate() bool {
	return len(e.InvolvedIDs) == 1 && e.InvolvedIDs[0] == e.PayerID
}

// Validate checks the entry-time invariants of a new expense. It returns a
// *ValidationError describing the first offending field, or nil.
func (e *Expense) Validate() error {
	if e.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if e.PayerID == "" {
		return &ValidationError{Field: "payer_id", Reason: "required"}
	}
	if len(e.InvolvedIDs) == 0 {
		return &ValidationError{Field: "involved_ids", Reason: "at least one member must share the expense"}
	}
	return nil
}

// Clone returns a deep copy of the expense.
func (e *Expense) Clone() *Expense {
	c := *e
	c.InvolvedIDs = append([]string(nil), e.InvolvedIDs...)
	if e.Attachments != nil {
		c.Attachments = append([]string(nil), e.Attachments...)
	}
	return &c
}

// ValidationError reports a field rejected at entry time. The mutation it
// guards must not have happened when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
