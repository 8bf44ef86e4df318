// Package history provides the price time-series cache: per-ticker,
// per-date price points merged incrementally into the durable store.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// Service implements HistoryService over a HistoryStore and the data provider.
type Service struct {
	client interfaces.GenAIClient
	store  interfaces.HistoryStore
	logger *common.Logger
}

// NewService creates a new history service.
func NewService(client interfaces.GenAIClient, store interfaces.HistoryStore, logger *common.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// rawSeries is the best-effort provider record for one ticker's history.
type rawSeries struct {
	Ticker   string              `json:"ticker"`
	Name     string              `json:"name,omitempty"`
	Currency string              `json:"currency,omitempty"`
	Points   []models.PricePoint `json:"points"`
}

// rawHistoryResponse is the provider payload shape for a history fetch.
type rawHistoryResponse struct {
	Series []rawSeries `json:"series"`
}

// GetOrFetch resolves each ticker from the cache when it holds enough points
// for the period, batches the rest into one provider call, merges the
// response by date key, persists the full series, and returns the trailing
// window per ticker. A total fetch failure returns whatever the cache
// resolved; partial progress is never discarded.
func (s *Service) GetOrFetch(ctx context.Context, period models.HistoryPeriod, tickers []string) (*models.HistoricalPrices, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown history period %q", period)
	}
	required := period.RequiredPoints()

	result := &models.HistoricalPrices{Period: period}
	cached := make(map[string]*models.PriceSeries, len(tickers))
	var toFetch []string

	// Cache-wide index, built lazily on the first exact-key miss: a variant
	// identifier ("LAMR.US") still resolves against a series stored under
	// another source's key.
	var stored map[string]*models.PriceSeries
	var storedKeys []string
	resolveVariant := func(key string) *models.PriceSeries {
		if stored == nil {
			all, err := s.store.GetAll(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("History cache scan failed")
				all = map[string]*models.PriceSeries{}
			}
			stored = all
			storedKeys = make([]string, 0, len(stored))
			for k := range stored {
				storedKeys = append(storedKeys, k)
			}
			sort.Strings(storedKeys)
		}
		if resolved, ok := common.MatchTicker(key, storedKeys); ok {
			return stored[resolved]
		}
		return nil
	}

	for _, ticker := range tickers {
		key := common.NormalizeTicker(ticker)
		series, err := s.store.GetSeries(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", key).Msg("History cache read failed")
		}
		if series == nil {
			series = resolveVariant(key)
		}
		if series != nil {
			cached[key] = series
		}
		if series != nil && len(series.Points) >= required {
			result.Series = append(result.Series, trailing(*series, required))
			continue
		}
		toFetch = append(toFetch, key)
	}

	if len(toFetch) == 0 {
		return result, nil
	}

	fetched, err := s.fetch(ctx, period, toFetch)
	if err != nil {
		s.logger.Warn().Err(err).Strs("tickers", toFetch).Msg("History fetch failed, returning cached series only")
		// Recovered failure: hand back what the cache already resolved,
		// padded with any short cached series for the missing tickers.
		for _, ticker := range toFetch {
			if series, ok := cached[ticker]; ok && len(series.Points) > 0 {
				result.Series = append(result.Series, trailing(*series, required))
			}
		}
		return result, nil
	}

	for _, raw := range fetched.Series {
		ticker, ok := common.MatchTicker(raw.Ticker, toFetch)
		if !ok {
			s.logger.Debug().Str("provider_ticker", raw.Ticker).Msg("Unresolved history ticker skipped")
			continue
		}

		merged := models.PriceSeries{
			Ticker:   ticker,
			Name:     raw.Name,
			Currency: raw.Currency,
		}
		if existing, ok := cached[ticker]; ok {
			merged.Points = mergePoints(existing.Points, raw.Points)
			if merged.Name == "" {
				merged.Name = existing.Name
			}
			if merged.Currency == "" {
				merged.Currency = existing.Currency
			}
		} else {
			merged.Points = mergePoints(nil, raw.Points)
		}

		if err := s.store.SaveSeries(ctx, &merged); err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("History series persist failed")
		}
		result.Series = append(result.Series, trailing(merged, required))
	}

	return result, nil
}

// fetch runs one batched provider call through the retry wrapper.
func (s *Service) fetch(ctx context.Context, period models.HistoryPeriod, tickers []string) (*rawHistoryResponse, error) {
	prompt := buildHistoryPrompt(period, tickers)

	text, err := common.Retry(ctx, func(ctx context.Context) (string, error) {
		return s.client.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	var response rawHistoryResponse
	if err := common.DecodeLoose(text, &response); err != nil {
		return nil, fmt.Errorf("history response did not decode: %w", err)
	}
	return &response, nil
}

// mergePoints merges two point sets by date key. New points overwrite old
// ones for the same date; the result is sorted ascending. Dates sort
// correctly as plain strings because they are "YYYY-MM-DD".
func mergePoints(existing, incoming []models.PricePoint) []models.PricePoint {
	byDate := make(map[string]models.PricePoint, len(existing)+len(incoming))
	for _, p := range existing {
		if p.Date != "" {
			byDate[p.Date] = p
		}
	}
	for _, p := range incoming {
		if p.Date != "" {
			byDate[p.Date] = p
		}
	}

	merged := make([]models.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	return merged
}

// trailing returns a copy of the series holding only the most recent n points.
func trailing(series models.PriceSeries, n int) models.PriceSeries {
	if len(series.Points) > n {
		series.Points = series.Points[len(series.Points)-n:]
	}
	series.Points = append([]models.PricePoint(nil), series.Points...)
	return series
}

func buildHistoryPrompt(period models.HistoryPeriod, tickers []string) string {
	return fmt.Sprintf(`Provide daily closing share prices for the last %s for these listed companies: %s.

Respond with JSON only, in this exact shape:
{"series":[{"ticker":"...","name":"...","currency":"...","points":[{"date":"YYYY-MM-DD","price":0.0}]}]}

Use the ticker symbols exactly as given. Dates ascending.`,
		periodLabel(period), strings.Join(tickers, ", "))
}

func periodLabel(period models.HistoryPeriod) string {
	switch period {
	case models.Period1M:
		return "month"
	case models.Period3M:
		return "3 months"
	case models.Period6M:
		return "6 months"
	case models.Period1Y:
		return "year"
	}
	return string(period)
}

var _ interfaces.HistoryService = (*Service)(nil)
