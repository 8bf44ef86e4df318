package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// snapshotKey is the fixed key for the single current snapshot record.
const snapshotKey = "current"

// SnapshotRecord wraps the serialized snapshot with versioning metadata.
// The snapshot itself is stored as JSON so a decode failure surfaces as a
// corrupt record instead of a partial struct.
type SnapshotRecord struct {
	Key           string `badgerhold:"key"`
	SchemaVersion string
	Data          []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

type snapshotStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSnapshotStorage creates a new SnapshotStore backed by BadgerHold.
func NewSnapshotStorage(store *Store, logger *common.Logger) *snapshotStorage {
	return &snapshotStorage{store: store, logger: logger}
}

func (s *snapshotStorage) Load(_ context.Context) (*models.Snapshot, error) {
	var record SnapshotRecord
	err := s.store.db.Get(snapshotKey, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(record.Data, &snapshot); err != nil {
		s.logger.Warn().Err(err).Msg("Stored snapshot failed to decode")
		return nil, fmt.Errorf("%w: %v", interfaces.ErrSnapshotCorrupt, err)
	}

	// The record tag is authoritative; a snapshot serialized before the
	// version field existed decodes with an empty SchemaVersion.
	if snapshot.SchemaVersion == "" {
		snapshot.SchemaVersion = record.SchemaVersion
	}

	return &snapshot, nil
}

func (s *snapshotStorage) Save(_ context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	record := SnapshotRecord{
		Key:           snapshotKey,
		SchemaVersion: snapshot.SchemaVersion,
		Data:          data,
	}

	// Read existing to preserve CreatedAt and increment Version
	var existing SnapshotRecord
	if err := s.store.db.Get(snapshotKey, &existing); err == nil {
		record.CreatedAt = existing.CreatedAt
		record.Version = existing.Version + 1
	} else {
		record.CreatedAt = time.Now()
		record.Version = 1
	}
	record.UpdatedAt = time.Now()

	if err := s.store.db.Upsert(snapshotKey, &record); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.Debug().
		Str("schema", record.SchemaVersion).
		Int("version", record.Version).
		Int("companies", len(snapshot.Companies)).
		Msg("Snapshot saved")
	return nil
}

var _ interfaces.SnapshotStore = (*snapshotStorage)(nil)
