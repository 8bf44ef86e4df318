// Package storage provides the top-level StorageManager coordinating the
// snapshot, history, and key-value stores over a single BadgerHold database.
package storage

import (
	"fmt"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/storage/badger"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	store     *badger.Store
	snapshots interfaces.SnapshotStore
	history   interfaces.HistoryStore
	keyValue  interfaces.KeyValueStore
	logger    *common.Logger
}

// NewManager opens the database at config.Storage.Path and wires the stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:     store,
		snapshots: badger.NewSnapshotStorage(store, logger),
		history:   badger.NewHistoryStorage(store, logger),
		keyValue:  badger.NewKVStorage(store, logger),
		logger:    logger,
	}, nil
}

func (m *Manager) Snapshots() interfaces.SnapshotStore {
	return m.snapshots
}

func (m *Manager) History() interfaces.HistoryStore {
	return m.history
}

func (m *Manager) KeyValue() interfaces.KeyValueStore {
	return m.keyValue
}

func (m *Manager) Close() error {
	return m.store.Close()
}

var _ interfaces.StorageManager = (*Manager)(nil)
