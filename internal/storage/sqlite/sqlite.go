// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. The whole application state is one snapshot;
// every Save rewrites the snapshot tables inside a single transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

const metaKeySelectedTrip = "selected_trip"

// snapshotTables lists every snapshot table, children before parents so a
// wipe never trips a foreign key.
var snapshotTables = []string{
	"expense_attachments",
	"expense_involved",
	"expenses",
	"trip_members",
	"trips",
	"friends",
	"app_meta",
}

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the persisted snapshot with state. The wipe and the rewrite
// share one transaction, so a failure leaves the previous snapshot intact.
func (s *Store) Save(ctx context.Context, state *models.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, f := range state.Friends {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (id, name, phone, photo, qr_code, position) VALUES (?, ?, ?, ?, ?, ?)",
			f.ID, f.Name, f.Phone, f.Photo, f.QRCode, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert friend: %w", err)
		}
	}

	for i, t := range state.Trips {
		if err := saveTrip(ctx, tx, t, i); err != nil {
			return err
		}
	}

	if state.Selected != "" {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO app_meta (key, value) VALUES (?, ?)",
			metaKeySelectedTrip, state.Selected,
		)
		if err != nil {
			return fmt.Errorf("failed to insert selected trip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func saveTrip(ctx context.Context, tx *sql.Tx, t *models.Trip, position int) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, photo, date, position) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.Name, t.Photo, t.Date, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i, friendID := range t.Members {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, friend_id, position) VALUES (?, ?, ?)",
			t.ID, friendID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}

	for i, e := range t.Expenses.All() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, trip_id, title, amount, payer_id, timestamp, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			e.ID, t.ID, e.Title, e.Amount, e.PayerID, e.Timestamp, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, friendID := range e.InvolvedIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_involved (expense_id, friend_id, position) VALUES (?, ?, ?)",
				e.ID, friendID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert involved member: %w", err)
			}
		}

		for j, data := range e.Attachments {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_attachments (expense_id, position, data) VALUES (?, ?, ?)",
				e.ID, j, data,
			)
			if err != nil {
				return fmt.Errorf("failed to insert attachment: %w", err)
			}
		}
	}

	return nil
}
