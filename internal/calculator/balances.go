// Package calculator computes per-member balances and settlement plans for a
// trip. It is pure: nothing here reads or mutates application state.
package calculator

import "tripsplit/internal/models"

// Balances computes the net position of every member across the trip's
// expenses. For each expense the payer is credited the full amount they
// fronted and every involved member is debited an equal share.
//
// Every trip member starts at zero, so members with no expenses still appear
// in the result. Ids referenced by an expense but absent from the member set
// accumulate too; the ledger does not filter them, display layers decide how
// to label them.
//
// Positive means the member is owed money, negative means they owe. The
// values sum to zero, up to floating-point rounding.
func Balances(trip *models.Trip) map[string]float64 {
	balances := make(map[string]float64, len(trip.Members))
	for _, id := range trip.Members {
		balances[id] = 0
	}

	for _, e := range trip.Expenses.All() {
		// An empty involved set cannot be split.
		if len(e.InvolvedIDs) == 0 {
			continue
		}

		balances[e.PayerID] += e.Amount

		share := e.Amount / float64(len(e.InvolvedIDs))
		for _, id := range e.InvolvedIDs {
			balances[id] -= share
		}
	}

	return balances
}
