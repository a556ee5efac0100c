// Package merge reconciles trips received from other devices with local
// state.
//
// Sync is token-based and eventually consistent: each exchange carries one
// whole trip, and applying the same token twice leaves the state unchanged.
package merge

import "tripsplit/internal/models"

// Apply merges incoming into st and returns the id of the affected trip.
//
// A trip id not present locally inserts the incoming trip at the front of
// the trip list. A known id reconciles in place: the member sets are
// unioned, and every incoming expense upserts the local entry under the same
// id. The incoming value always wins, whatever the timestamps say; replaying
// an old token therefore restores its version of those expenses. Deletions
// never propagate, because an absent expense is indistinguishable from one
// the sender never had.
//
// The expense display order is re-derived (most recent first) after every
// merge, so the outcome does not depend on the order tokens arrive in.
func Apply(st *models.State, incoming *models.Trip) string {
	local := st.Trip(incoming.ID)
	if local == nil {
		incoming.Expenses.SortByRecency()
		st.PrependTrip(incoming)
		return incoming.ID
	}

	for _, id := range incoming.Members {
		local.AddMember(id)
	}

	for _, e := range incoming.Expenses.All() {
		e.TripID = local.ID
		local.Expenses.Put(e)
	}
	local.Expenses.SortByRecency()

	return local.ID
}
