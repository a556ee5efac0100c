package models

// State is the whole on-device application state: every trip, the global
// friend list, and the currently selected trip. It is the unit of
// persistence; loads and saves always cover the full snapshot.
type State struct {
	// Trips is ordered most recent first. New trips and trips arriving from
	// other devices are prepended.
	Trips []*Trip `json:"trips"`

	// Friends is the flat global profile list, in insertion order.
	Friends []*Friend `json:"friends"`

	// Selected is the id of the currently selected trip, or empty when no
	// trip is selected.
	Selected string `json:"selected,omitempty"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// Trip returns the trip with the given id, or nil.
func (s *State) Trip(id string) *Trip {
	for _, t := range s.Trips {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// PrependTrip inserts t at the front of the trip list.
func (s *State) PrependTrip(t *Trip) {
	s.Trips = append([]*Trip{t}, s.Trips...)
}

// Friend returns the friend with the given id, or nil.
func (s *State) Friend(id string) *Friend {
	for _, f := range s.Friends {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// AddFriend appends f to the global friend list.
func (s *State) AddFriend(f *Friend) {
	s.Friends = append(s.Friends, f)
}

// AdoptFriend adds f only when no friend with the same id exists yet, and
// reports whether it was added. Profiles arriving from another device use
// this so they never overwrite local edits.
func (s *State) AdoptFriend(f *Friend) bool {
	if s.Friend(f.ID) != nil {
		return false
	}
	s.Friends = append(s.Friends, f)
	return true
}

// RemoveFriend deletes the friend with the given id from the global list and
// reports whether it was present. Trips keep any references to the id; those
// become dangling and resolve to a placeholder name at display time.
func (s *State) RemoveFriend(id string) bool {
	for i, f := range s.Friends {
		if f.ID == id {
			s.Friends = append(s.Friends[:i], s.Friends[i+1:]...)
			return true
		}
	}
	return false
}
