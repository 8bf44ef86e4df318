package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// PriceSeriesRecord stores one ticker's accumulated price points.
type PriceSeriesRecord struct {
	Ticker    string `badgerhold:"key"`
	Name      string
	Currency  string
	Points    []models.PricePoint
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

type historyStorage struct {
	store  *Store
	logger *common.Logger
}

// NewHistoryStorage creates a new HistoryStore backed by BadgerHold.
func NewHistoryStorage(store *Store, logger *common.Logger) *historyStorage {
	return &historyStorage{store: store, logger: logger}
}

func (s *historyStorage) GetSeries(_ context.Context, ticker string) (*models.PriceSeries, error) {
	key := common.NormalizeTicker(ticker)

	var record PriceSeriesRecord
	err := s.store.db.Get(key, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get price series for '%s': %w", ticker, err)
	}

	return &models.PriceSeries{Ticker: record.Ticker, Name: record.Name, Currency: record.Currency, Points: record.Points}, nil
}

func (s *historyStorage) SaveSeries(_ context.Context, series *models.PriceSeries) error {
	if series == nil || series.Ticker == "" {
		return fmt.Errorf("price series requires a ticker")
	}
	key := common.NormalizeTicker(series.Ticker)

	record := PriceSeriesRecord{
		Ticker:   key,
		Name:     series.Name,
		Currency: series.Currency,
		Points:   series.Points,
	}

	// Read existing to preserve CreatedAt and increment Version
	var existing PriceSeriesRecord
	if err := s.store.db.Get(key, &existing); err == nil {
		record.CreatedAt = existing.CreatedAt
		record.Version = existing.Version + 1
	} else {
		record.CreatedAt = time.Now()
		record.Version = 1
	}
	record.UpdatedAt = time.Now()

	if err := s.store.db.Upsert(key, &record); err != nil {
		return fmt.Errorf("failed to save price series for '%s': %w", series.Ticker, err)
	}
	s.logger.Debug().Str("ticker", key).Int("points", len(record.Points)).Int("version", record.Version).Msg("Price series saved")
	return nil
}

func (s *historyStorage) GetAll(_ context.Context) (map[string]*models.PriceSeries, error) {
	var records []PriceSeriesRecord
	if err := s.store.db.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list price series: %w", err)
	}

	all := make(map[string]*models.PriceSeries, len(records))
	for _, record := range records {
		all[record.Ticker] = &models.PriceSeries{Ticker: record.Ticker, Name: record.Name, Currency: record.Currency, Points: record.Points}
	}
	return all, nil
}

var _ interfaces.HistoryStore = (*historyStorage)(nil)
