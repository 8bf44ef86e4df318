// Package interfaces defines service contracts for the OOH terminal
package interfaces

import (
	"context"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// SyncService owns the dashboard snapshot and its refresh lifecycle
type SyncService interface {
	// Bootstrap loads the persisted snapshot (or seeds defaults), runs the
	// repair pass, and recomputes derived figures. Called once at startup.
	Bootstrap(ctx context.Context) error

	// Snapshot returns a deep copy of the current snapshot
	Snapshot() *models.Snapshot

	// Refresh fetches a category from the provider and merges the result.
	// Without tickers the whole tracked set is covered and concurrent calls
	// for the same category coalesce onto one fetch; with tickers the fetch
	// is scoped to them.
	Refresh(ctx context.Context, category models.Category, tickers ...string) error

	// RefreshStale refreshes every category whose freshness window elapsed
	RefreshStale(ctx context.Context) error

	// AddCompany resolves a user-entered ticker, fetches its data, and
	// appends it to the tracked set
	AddCompany(ctx context.Context, ticker string) (*models.Company, error)

	// RemoveCompany drops a ticker from the tracked set
	RemoveCompany(ctx context.Context, ticker string) error

	// CompanySummary returns a free-text provider briefing on a tracked
	// company. The text is not cached.
	CompanySummary(ctx context.Context, ticker string) (string, error)

	// Loading reports which categories have a refresh in flight
	Loading() map[models.Category]bool

	// FreshnessAges returns a human-readable age per category
	FreshnessAges() map[models.Category]string
}

// HistoryService manages cached price history
type HistoryService interface {
	// GetOrFetch returns price series for the given tickers over a period,
	// fetching from the provider only for tickers whose cached series is
	// too short. A provider failure never discards cache-resolved series.
	GetOrFetch(ctx context.Context, period models.HistoryPeriod, tickers []string) (*models.HistoricalPrices, error)
}
