package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// --- Test helpers ---

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(testLogger(), filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *common.Logger {
	return common.NewLogger("error")
}

// --- Store tests ---

func TestStore_OpenClose(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(testLogger(), filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.DB() == nil {
		t.Fatal("expected non-nil DB")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStore_CloseNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil DB should not error: %v", err)
	}
}

// --- KV storage tests ---

func TestKVStorage_CRUD(t *testing.T) {
	store := newTestStore(t)
	kv := NewKVStorage(store, testLogger())
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}

	if err := kv.Set(ctx, "schema", "v2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := kv.Get(ctx, "schema")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected 'v2', got %q", got)
	}

	if err := kv.Set(ctx, "schema", "v3"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = kv.Get(ctx, "schema")
	if got != "v3" {
		t.Fatalf("expected 'v3' after overwrite, got %q", got)
	}

	if err := kv.Delete(ctx, "schema"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get(ctx, "schema"); err == nil {
		t.Fatal("expected error after delete")
	}

	// Deleting a missing key is not an error
	if err := kv.Delete(ctx, "schema"); err != nil {
		t.Fatalf("Delete of missing key should not error: %v", err)
	}
}

// --- Snapshot storage tests ---

func TestSnapshotStorage_NotFound(t *testing.T) {
	store := newTestStore(t)
	ss := NewSnapshotStorage(store, testLogger())

	_, err := ss.Load(context.Background())
	if !errors.Is(err, interfaces.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotStorage_SaveLoad(t *testing.T) {
	store := newTestStore(t)
	ss := NewSnapshotStorage(store, testLogger())
	ctx := context.Background()

	snapshot := models.DefaultSnapshot()
	if err := ss.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := ss.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SchemaVersion != models.SchemaVersion {
		t.Fatalf("expected schema %q, got %q", models.SchemaVersion, loaded.SchemaVersion)
	}
	if len(loaded.Companies) != len(snapshot.Companies) {
		t.Fatalf("expected %d companies, got %d", len(snapshot.Companies), len(loaded.Companies))
	}
	if loaded.Companies[0].Ticker != snapshot.Companies[0].Ticker {
		t.Fatalf("ticker mismatch: %q vs %q", loaded.Companies[0].Ticker, snapshot.Companies[0].Ticker)
	}
}

func TestSnapshotStorage_VersionBump(t *testing.T) {
	store := newTestStore(t)
	ss := NewSnapshotStorage(store, testLogger())
	ctx := context.Background()

	snapshot := models.DefaultSnapshot()
	if err := ss.Save(ctx, snapshot); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := ss.Save(ctx, snapshot); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	var record SnapshotRecord
	if err := store.DB().Get("current", &record); err != nil {
		t.Fatalf("record read failed: %v", err)
	}
	if record.Version != 2 {
		t.Fatalf("expected record version 2, got %d", record.Version)
	}
	if record.CreatedAt.IsZero() || record.CreatedAt.After(record.UpdatedAt) {
		t.Fatal("CreatedAt should be preserved across saves")
	}
}

func TestSnapshotStorage_Corrupt(t *testing.T) {
	store := newTestStore(t)
	ss := NewSnapshotStorage(store, testLogger())

	record := SnapshotRecord{Key: "current", SchemaVersion: models.SchemaVersion, Data: []byte("{not json")}
	if err := store.DB().Upsert("current", &record); err != nil {
		t.Fatalf("seed corrupt record failed: %v", err)
	}

	_, err := ss.Load(context.Background())
	if !errors.Is(err, interfaces.ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
	}
}

// --- History storage tests ---

func TestHistoryStorage_MissingSeries(t *testing.T) {
	store := newTestStore(t)
	hs := NewHistoryStorage(store, testLogger())

	series, err := hs.GetSeries(context.Background(), "DEC.PA")
	if err != nil {
		t.Fatalf("GetSeries failed: %v", err)
	}
	if series != nil {
		t.Fatal("expected nil series for unknown ticker")
	}
}

func TestHistoryStorage_SaveGet(t *testing.T) {
	store := newTestStore(t)
	hs := NewHistoryStorage(store, testLogger())
	ctx := context.Background()

	series := &models.PriceSeries{
		Ticker:   "dec_pa",
		Name:     "JCDecaux",
		Currency: "EUR",
		Points: []models.PricePoint{
			{Date: "2026-08-26", Price: 16.2},
			{Date: "2026-08-27", Price: 16.4},
		},
	}
	if err := hs.SaveSeries(ctx, series); err != nil {
		t.Fatalf("SaveSeries failed: %v", err)
	}

	// Lookup is normalized: underscore and case variants hit the same record
	got, err := hs.GetSeries(ctx, "DEC.PA")
	if err != nil {
		t.Fatalf("GetSeries failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored series")
	}
	if got.Ticker != "DEC.PA" {
		t.Fatalf("expected normalized ticker DEC.PA, got %q", got.Ticker)
	}
	if len(got.Points) != 2 || got.Points[1].Price != 16.4 {
		t.Fatalf("unexpected points: %+v", got.Points)
	}
	if got.Currency != "EUR" {
		t.Fatalf("expected currency preserved, got %q", got.Currency)
	}
}

func TestHistoryStorage_SaveRequiresTicker(t *testing.T) {
	store := newTestStore(t)
	hs := NewHistoryStorage(store, testLogger())

	if err := hs.SaveSeries(context.Background(), &models.PriceSeries{}); err == nil {
		t.Fatal("expected error for empty ticker")
	}
}

func TestHistoryStorage_GetAll(t *testing.T) {
	store := newTestStore(t)
	hs := NewHistoryStorage(store, testLogger())
	ctx := context.Background()

	for _, ticker := range []string{"DEC.PA", "LAMR", "OUT"} {
		series := &models.PriceSeries{
			Ticker: ticker,
			Points: []models.PricePoint{{Date: "2026-08-27", Price: 10}},
		}
		if err := hs.SaveSeries(ctx, series); err != nil {
			t.Fatalf("SaveSeries(%s) failed: %v", ticker, err)
		}
	}

	all, err := hs.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 series, got %d", len(all))
	}
	if all["LAMR"] == nil || len(all["LAMR"].Points) != 1 {
		t.Fatalf("unexpected LAMR series: %+v", all["LAMR"])
	}
}
