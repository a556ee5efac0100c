package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

// Load reads the whole persisted snapshot, rebuilding every collection in
// its persisted order. Returns storage.ErrEmpty when the database holds no
// state yet.
func (s *Store) Load(ctx context.Context) (*models.State, error) {
	state := models.NewState()

	if err := s.loadFriends(ctx, state); err != nil {
		return nil, err
	}
	if err := s.loadTrips(ctx, state); err != nil {
		return nil, err
	}

	var selected string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM app_meta WHERE key = ?", metaKeySelectedTrip,
	).Scan(&selected)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get selected trip: %w", err)
	}
	state.Selected = selected

	if len(state.Friends) == 0 && len(state.Trips) == 0 && state.Selected == "" {
		return nil, storage.ErrEmpty
	}
	return state, nil
}

func (s *Store) loadFriends(ctx context.Context, state *models.State) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phone, photo, qr_code FROM friends ORDER BY position",
	)
	if err != nil {
		return fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f := &models.Friend{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Phone, &f.Photo, &f.QRCode); err != nil {
			return fmt.Errorf("failed to scan friend: %w", err)
		}
		state.Friends = append(state.Friends, f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate friends: %w", err)
	}
	return nil
}

func (s *Store) loadTrips(ctx context.Context, state *models.State) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, photo, date FROM trips ORDER BY position",
	)
	if err != nil {
		return fmt.Errorf("failed to get trips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t := &models.Trip{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Photo, &t.Date); err != nil {
			return fmt.Errorf("failed to scan trip: %w", err)
		}
		state.Trips = append(state.Trips, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate trips: %w", err)
	}

	for _, t := range state.Trips {
		if err := s.loadTripMembers(ctx, t); err != nil {
			return err
		}
		if err := s.loadExpenses(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadTripMembers(ctx context.Context, t *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT friend_id FROM trip_members WHERE trip_id = ? ORDER BY position", t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get trip members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var friendID string
		if err := rows.Scan(&friendID); err != nil {
			return fmt.Errorf("failed to scan trip member: %w", err)
		}
		t.Members = append(t.Members, friendID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate trip members: %w", err)
	}
	return nil
}

func (s *Store) loadExpenses(ctx context.Context, t *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, amount, payer_id, timestamp FROM expenses WHERE trip_id = ? ORDER BY position", t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{TripID: t.ID}
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.PayerID, &e.Timestamp); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, e := range expenses {
		if err := s.loadInvolved(ctx, e); err != nil {
			return err
		}
		if err := s.loadAttachments(ctx, e); err != nil {
			return err
		}
		t.Expenses.Put(e)
	}
	return nil
}

func (s *Store) loadInvolved(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT friend_id FROM expense_involved WHERE expense_id = ? ORDER BY position", e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get involved members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var friendID string
		if err := rows.Scan(&friendID); err != nil {
			return fmt.Errorf("failed to scan involved member: %w", err)
		}
		e.InvolvedIDs = append(e.InvolvedIDs, friendID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate involved members: %w", err)
	}
	return nil
}

func (s *Store) loadAttachments(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM expense_attachments WHERE expense_id = ? ORDER BY position", e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		e.Attachments = append(e.Attachments, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate attachments: %w", err)
	}
	return nil
}
