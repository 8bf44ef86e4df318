// Package interfaces defines service contracts for the OOH terminal
package interfaces

import (
	"context"
	"errors"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// ErrSnapshotNotFound indicates no snapshot has been persisted yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSnapshotCorrupt indicates a persisted snapshot could not be decoded
var ErrSnapshotCorrupt = errors.New("snapshot corrupt")

// StorageManager coordinates all storage backends
type StorageManager interface {
	Snapshots() SnapshotStore
	History() HistoryStore
	KeyValue() KeyValueStore

	// Lifecycle
	Close() error
}

// SnapshotStore persists the dashboard snapshot
type SnapshotStore interface {
	// Load retrieves the current snapshot. Returns ErrSnapshotNotFound when
	// nothing has been saved, ErrSnapshotCorrupt when the stored record
	// cannot be decoded.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save persists the snapshot as the current record
	Save(ctx context.Context, snapshot *models.Snapshot) error
}

// HistoryStore persists per-ticker price series
type HistoryStore interface {
	// GetSeries retrieves the stored series for a ticker, nil when absent
	GetSeries(ctx context.Context, ticker string) (*models.PriceSeries, error)

	// SaveSeries persists a ticker's price series
	SaveSeries(ctx context.Context, series *models.PriceSeries) error

	// GetAll retrieves every stored series keyed by normalized ticker
	GetAll(ctx context.Context) (map[string]*models.PriceSeries, error)
}

// KeyValueStore holds small system records (schema markers, sync state)
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
