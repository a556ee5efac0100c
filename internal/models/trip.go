package models

// Trip represents one shared expense-tracking session, such as a holiday or
// a recurring dinner group.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	// It is the key trips are matched on when two devices exchange data, so
	// it must never be reused.
	ID string `json:"id"`

	// Name is the display name of the trip.
	Name string `json:"name"`

	// Photo is an optional opaque encoded cover image payload.
	Photo string `json:"photo,omitempty"`

	// Date is the creation instant in Unix milliseconds. Immutable.
	Date int64 `json:"date"`

	// Members holds the ids of the friends participating in the trip.
	// It behaves as a set: no duplicates, order carries no meaning.
	Members []string `json:"members"`

	// Expenses is the trip's expense collection, keyed by expense id and
	// carrying an explicit display order (most recent first).
	Expenses ExpenseList `json:"expenses"`
}

// HasMember reports whether id is already in the member set.
func (t *Trip) HasMember(id string) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember adds id to the member set and reports whether the set changed.
// Adding an existing member is a no-op.
func (t *Trip) AddMember(id string) bool {
	if t.HasMember(id) {
		return false
	}
	t.Members = append(t.Members, id)
	return true
}

// Clone returns a deep copy of the trip. Mutating the copy, including its
// expenses, leaves the original untouched.
func (t *Trip) Clone() *Trip {
	c := *t
	c.Members = append([]string(nil), t.Members...)
	c.Expenses = t.Expenses.Clone()
	return &c
}
