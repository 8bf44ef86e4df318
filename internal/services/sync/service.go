// Package sync owns the dashboard snapshot: the per-category refresh
// orchestrator, the ratio engine, and the snapshot repair pass.
package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// Service implements SyncService. The snapshot is owned state: readers get
// deep copies, refresh pipelines mutate a clone and swap it in, and every
// swap is persisted. Categories refresh independently; concurrent refreshes
// of the same category coalesce onto one in-flight fetch.
type Service struct {
	client  interfaces.GenAIClient
	storage interfaces.StorageManager
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing

	mu       stdsync.Mutex
	snapshot *models.Snapshot
	inflight map[models.Category]*inflight

	// commitMu serializes the clone-mutate-persist-install sequence so a
	// pipeline resuming after a slow fetch merges into the snapshot as it
	// is then, not as it was when the fetch started. Fetches never hold it.
	commitMu stdsync.Mutex
}

// inflight is the per-category token: one holder runs the fetch, later
// callers wait on done and share the result.
type inflight struct {
	done chan struct{}
	err  error
}

var errAlreadyTracked = errors.New("already tracked")

// NewService creates a new sync service. Bootstrap must run before any
// other operation.
func NewService(client interfaces.GenAIClient, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		client:   client,
		storage:  storage,
		logger:   logger,
		now:      time.Now,
		inflight: make(map[models.Category]*inflight),
	}
}

// Bootstrap loads the persisted snapshot, migrating and repairing it, or
// seeds the bundled defaults when nothing usable exists.
func (s *Service) Bootstrap(ctx context.Context) error {
	snapshot, err := s.storage.Snapshots().Load(ctx)
	switch {
	case err == nil:
		s.migrate(snapshot)
	case errors.Is(err, interfaces.ErrSnapshotNotFound):
		s.logger.Info().Msg("No persisted snapshot, seeding defaults")
		snapshot = models.DefaultSnapshot()
	case errors.Is(err, interfaces.ErrSnapshotCorrupt):
		s.logger.Warn().Err(err).Msg("Persisted snapshot unreadable, falling back to defaults")
		snapshot = models.DefaultSnapshot()
	default:
		return fmt.Errorf("snapshot load: %w", err)
	}

	s.repair(snapshot)
	for _, company := range snapshot.Companies {
		applyDerived(company)
	}

	if err := s.storage.Snapshots().Save(ctx, snapshot); err != nil {
		return fmt.Errorf("snapshot save after bootstrap: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info().
		Int("companies", len(snapshot.Companies)).
		Str("schema", snapshot.SchemaVersion).
		Msg("Snapshot bootstrapped")
	return nil
}

// Snapshot returns a deep copy of the current snapshot.
func (s *Service) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// commit clones the snapshot current at call time, applies mutate, persists
// the result, and installs it. A mutate error aborts without persisting.
func (s *Service) commit(ctx context.Context, mutate func(*models.Snapshot) error) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	snapshot := s.Snapshot()
	if err := mutate(snapshot); err != nil {
		return err
	}
	if err := s.storage.Snapshots().Save(ctx, snapshot); err != nil {
		return fmt.Errorf("snapshot persist: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	return nil
}

// Refresh runs the fetch → sanitize → parse → merge → persist pipeline for
// one category. Without tickers the whole tracked set is covered and a
// second call for a busy category coalesces into the pending one. With
// tickers the fetch is scoped to them and runs directly: a whole-category
// refresh already in flight must not absorb a narrower request.
func (s *Service) Refresh(ctx context.Context, category models.Category, tickers ...string) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}

	var scope []string
	for _, ticker := range tickers {
		if normalized := common.NormalizeTicker(ticker); normalized != "" {
			scope = append(scope, normalized)
		}
	}
	if len(scope) > 0 {
		return s.runPipeline(ctx, category, scope)
	}

	s.mu.Lock()
	if pending, ok := s.inflight[category]; ok {
		s.mu.Unlock()
		s.logger.Debug().Str("category", string(category)).Msg("Refresh coalesced into pending fetch")
		select {
		case <-pending.done:
			return pending.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	token := &inflight{done: make(chan struct{})}
	s.inflight[category] = token
	s.mu.Unlock()

	// The loading token always clears, whatever the pipeline does.
	err := s.runPipeline(ctx, category, nil)

	s.mu.Lock()
	delete(s.inflight, category)
	s.mu.Unlock()
	token.err = err
	close(token.done)

	return err
}

func (s *Service) runPipeline(ctx context.Context, category models.Category, scope []string) error {
	started := s.now()

	tickers := scope
	if len(tickers) == 0 {
		tickers = s.Snapshot().Tickers()
	}

	prompt := buildPrompt(category, tickers)
	text, err := common.Retry(ctx, func(ctx context.Context) (string, error) {
		return s.client.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("category", string(category)).Msg("Category fetch failed")
		return fmt.Errorf("%s refresh: %w", category, err)
	}

	// Merge against the snapshot as it stands now: another category may
	// have refreshed while the fetch was in flight.
	var mergeErr error
	err = s.commit(ctx, func(snapshot *models.Snapshot) error {
		if err := s.merge(snapshot, category, text); err != nil {
			mergeErr = err
			return err
		}
		snapshot.StampFreshness(category, s.now())
		snapshot.LastUpdated = s.now()
		return nil
	})
	if mergeErr != nil {
		// Parse and shape failures are recovered: cached data stays on
		// screen and no freshness stamp is written.
		s.logger.Warn().Err(mergeErr).Str("category", string(category)).Msg("Response unusable, keeping cached data")
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("category", string(category)).
		Dur("elapsed", s.now().Sub(started)).
		Msg("Category refreshed")
	return nil
}

// RefreshStale refreshes every category whose freshness window has elapsed.
// Categories are independent: one failure never blocks the rest.
func (s *Service) RefreshStale(ctx context.Context) error {
	snapshot := s.Snapshot()

	var errs []error
	for _, category := range models.Categories() {
		if common.IsFresh(snapshot.Freshness[category], common.FreshnessWindow(category), s.now()) {
			continue
		}
		if err := s.Refresh(ctx, category); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddCompany appends a new tracked entity and runs a fundamentals refresh
// scoped to it. The entity is kept even when the scoped fetch fails; the
// next fundamentals refresh will fill it.
func (s *Service) AddCompany(ctx context.Context, ticker string) (*models.Company, error) {
	normalized := common.NormalizeTicker(ticker)
	if normalized == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	var existing string
	err := s.commit(ctx, func(snapshot *models.Snapshot) error {
		if match, ok := common.MatchTicker(normalized, snapshot.Tickers()); ok {
			existing = match
			return errAlreadyTracked
		}
		company := &models.Company{
			ID:            uuid.NewString(),
			Name:          normalized,
			Ticker:        normalized,
			Rating:        models.RatingNA,
			MarketCap:     "--",
			EV:            "--",
			NetDebt:       "--",
			DividendYield: "--",
		}
		applyDerived(company)
		snapshot.Companies = append(snapshot.Companies, company)
		return nil
	})
	if errors.Is(err, errAlreadyTracked) {
		return s.Snapshot().FindCompany(existing), nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx, models.CategoryFundamentals, normalized); err != nil {
		s.logger.Warn().Err(err).Str("ticker", normalized).Msg("Scoped fundamentals fetch failed, entity added without data")
	}

	return s.Snapshot().FindCompany(normalized), nil
}

// CompanySummary asks the provider for a free-text investor briefing on a
// tracked company. Nothing is cached or persisted; the text goes straight
// to the caller.
func (s *Service) CompanySummary(ctx context.Context, ticker string) (string, error) {
	snapshot := s.Snapshot()
	resolved, ok := common.MatchTicker(common.NormalizeTicker(ticker), snapshot.Tickers())
	if !ok {
		return "", fmt.Errorf("ticker %q not tracked", ticker)
	}
	company := snapshot.FindCompany(resolved)

	prompt := buildSummaryPrompt(company)
	text, err := common.Retry(ctx, func(ctx context.Context) (string, error) {
		return s.client.GenerateContent(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("summary for %s: %w", resolved, err)
	}
	return text, nil
}

// RemoveCompany drops a ticker from the tracked set.
func (s *Service) RemoveCompany(ctx context.Context, ticker string) error {
	normalized := common.NormalizeTicker(ticker)

	return s.commit(ctx, func(snapshot *models.Snapshot) error {
		kept := snapshot.Companies[:0]
		removed := false
		for _, company := range snapshot.Companies {
			if company.Ticker == normalized {
				removed = true
				continue
			}
			kept = append(kept, company)
		}
		if !removed {
			return fmt.Errorf("ticker %q not tracked", ticker)
		}

		snapshot.Companies = kept
		delete(snapshot.Documents, normalized)
		snapshot.LastUpdated = s.now()
		return nil
	})
}

// Loading reports which categories have a refresh in flight.
func (s *Service) Loading() map[models.Category]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	loading := make(map[models.Category]bool, len(s.inflight))
	for category := range s.inflight {
		loading[category] = true
	}
	return loading
}

// FreshnessAges returns a human-readable age per category.
func (s *Service) FreshnessAges() map[models.Category]string {
	snapshot := s.Snapshot()

	ages := make(map[models.Category]string, len(models.Categories()))
	for _, category := range models.Categories() {
		ages[category] = common.FormatAge(snapshot.Freshness[category])
	}
	return ages
}

var _ interfaces.SyncService = (*Service)(nil)
