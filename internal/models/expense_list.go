package models

import (
	"encoding/json"
	"sort"
)

// ExpenseList is the expense collection of a trip: an id-keyed map for
// constant-time upserts during syncs, plus an explicit order slice that is
// the display order.
//
// The zero value is an empty list ready for use. JSON uses the plain array
// form in display order; the map is an in-memory index only.
type ExpenseList struct {
	order []string
	byID  map[string]*Expense
}

// NewExpenseList builds a list holding the given expenses in order.
func NewExpenseList(expenses ...*Expense) ExpenseList {
	var l ExpenseList
	for _, e := range expenses {
		l.Put(e)
	}
	return l
}

// Len returns the number of expenses in the list.
func (l *ExpenseList) Len() int {
	return len(l.order)
}

// Get returns the expense stored under id, or nil.
func (l *ExpenseList) Get(id string) *Expense {
	return l.byID[id]
}

// Put inserts e, or overwrites the entry sharing its id. A new id is
// appended to the display order; an existing id keeps its position until the
// next SortByRecency.
func (l *ExpenseList) Put(e *Expense) {
	if l.byID == nil {
		l.byID = make(map[string]*Expense)
	}
	if _, exists := l.byID[e.ID]; !exists {
		l.order = append(l.order, e.ID)
	}
	l.byID[e.ID] = e
}

// All returns the expenses in display order. The slice is freshly allocated
// but shares the expense pointers.
func (l *ExpenseList) All() []*Expense {
	out := make([]*Expense, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// SortByRecency re-derives the display order: descending by timestamp, with
// the previous relative order preserved between equal timestamps.
func (l *ExpenseList) SortByRecency() {
	sort.SliceStable(l.order, func(i, j int) bool {
		return l.byID[l.order[i]].Timestamp > l.byID[l.order[j]].Timestamp
	})
}

// Clone returns a deep copy of the list, including the expenses themselves.
func (l ExpenseList) Clone() ExpenseList {
	var c ExpenseList
	for _, id := range l.order {
		c.Put(l.byID[id].Clone())
	}
	return c
}

// MarshalJSON encodes the list as a JSON array in display order. An empty
// list encodes as [], never null.
func (l ExpenseList) MarshalJSON() ([]byte, error) {
	if len(l.order) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l.All())
}

// UnmarshalJSON decodes a JSON array of expenses, rebuilding the index.
// Should the array carry duplicate ids, the later value wins and the first
// position is kept.
func (l *ExpenseList) UnmarshalJSON(data []byte) error {
	var items []*Expense
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = ExpenseList{}
	for _, e := range items {
		l.Put(e)
	}
	return nil
}
