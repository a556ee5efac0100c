// Package storage provides abstractions for persisting the application
// state.
package storage

import (
	"context"
	"errors"

	"tripsplit/internal/models"
)

// ErrEmpty reports that the store holds no snapshot yet. Callers start from
// a fresh state when they see it.
var ErrEmpty = errors.New("no state persisted")

// Store is the persistence gateway for the whole application state. There is
// no partial persistence: Load returns the complete snapshot and every Save
// replaces it. This abstraction allows swapping storage backends without
// changing the service layer.
type Store interface {
	// Load reads the persisted snapshot. Returns ErrEmpty when nothing has
	// been saved yet.
	Load(ctx context.Context) (*models.State, error)

	// Save atomically replaces the persisted snapshot with state. On error
	// the previous snapshot is left intact.
	Save(ctx context.Context, state *models.State) error

	// Close releases any resources held by the store.
	Close() error
}
