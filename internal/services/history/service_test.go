package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// --- Mocks ---

type mockClient struct {
	response string
	err      error
	calls    int
}

func (m *mockClient) GenerateJSON(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockClient) GenerateContent(_ context.Context, _ string) (string, error) {
	return m.GenerateJSON(context.Background(), "")
}

func (m *mockClient) Model() string { return "mock" }

type memStore struct {
	series map[string]*models.PriceSeries
	saves  int
}

func newMemStore() *memStore {
	return &memStore{series: make(map[string]*models.PriceSeries)}
}

func (m *memStore) GetSeries(_ context.Context, ticker string) (*models.PriceSeries, error) {
	return m.series[ticker], nil
}

func (m *memStore) SaveSeries(_ context.Context, series *models.PriceSeries) error {
	m.saves++
	m.series[series.Ticker] = series
	return nil
}

func (m *memStore) GetAll(_ context.Context) (map[string]*models.PriceSeries, error) {
	return m.series, nil
}

func seedSeries(store *memStore, ticker string, days int) {
	points := make([]models.PricePoint, days)
	for i := range points {
		points[i] = models.PricePoint{Date: fmt.Sprintf("2026-07-%02d", i+1), Price: 10 + float64(i)}
	}
	store.series[ticker] = &models.PriceSeries{Ticker: ticker, Points: points}
}

func newTestService(client *mockClient, store *memStore) *Service {
	return NewService(client, store, common.NewSilentLogger())
}

// --- Tests ---

func TestGetOrFetchCacheHitSkipsFetch(t *testing.T) {
	client := &mockClient{}
	store := newMemStore()
	seedSeries(store, "DEC.PA", 12) // 1M threshold is 10

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"DEC.PA"})
	require.NoError(t, err)
	require.Len(t, result.Series, 1)

	assert.Zero(t, client.calls, "cache hit must not call the provider")
	assert.Len(t, result.Series[0].Points, 10, "returns only the trailing window")
	assert.Equal(t, "2026-07-12", result.Series[0].Points[9].Date, "most recent point kept")
	assert.Equal(t, "2026-07-03", result.Series[0].Points[0].Date, "older points trimmed")
}

func TestGetOrFetchResolvesCachedSeriesUnderVariantKey(t *testing.T) {
	client := &mockClient{}
	store := newMemStore()
	seedSeries(store, "LAMR", 12)

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"LAMR.US"})
	require.NoError(t, err)
	require.Len(t, result.Series, 1)

	assert.Zero(t, client.calls, "series cached under another source's key resolves without a fetch")
	assert.Len(t, result.Series[0].Points, 10)
}

func TestGetOrFetchShortCacheFetchesAndMerges(t *testing.T) {
	client := &mockClient{
		response: `{"series":[{"ticker":"DEC.PA","currency":"EUR","points":[
			{"date":"2026-07-03","price":99},
			{"date":"2026-07-04","price":16.1},
			{"date":"2026-07-05","price":16.2},
			{"date":"2026-07-06","price":16.3},
			{"date":"2026-07-07","price":16.4},
			{"date":"2026-07-08","price":16.5},
			{"date":"2026-07-09","price":16.6},
			{"date":"2026-07-10","price":16.7}]}]}`,
	}
	store := newMemStore()
	seedSeries(store, "DEC.PA", 3) // 2026-07-01..03, below the 1M threshold

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"DEC.PA"})
	require.NoError(t, err)
	require.Len(t, result.Series, 1)
	assert.Equal(t, 1, client.calls)

	// Union of dates: 01..10, dedup on 07-03 with the new point winning
	persisted := store.series["DEC.PA"]
	require.Len(t, persisted.Points, 10)
	assert.Equal(t, "2026-07-01", persisted.Points[0].Date)
	assert.Equal(t, "2026-07-10", persisted.Points[9].Date)
	assert.Equal(t, 99.0, persisted.Points[2].Price, "incoming point overwrites cached point for the same date")
	assert.Equal(t, "EUR", persisted.Currency)
}

func TestGetOrFetchResolvesProviderTickerVariants(t *testing.T) {
	client := &mockClient{
		response: `{"series":[{"ticker":"dec_pa","points":[{"date":"2026-07-01","price":15}]}]}`,
	}
	store := newMemStore()

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"DEC.PA"})
	require.NoError(t, err)
	require.Len(t, result.Series, 1)
	assert.Equal(t, "DEC.PA", result.Series[0].Ticker, "resolver maps provider variant onto the requested ticker")
	assert.NotNil(t, store.series["DEC.PA"])
}

func TestGetOrFetchUnresolvedRecordSkipped(t *testing.T) {
	client := &mockClient{
		response: `{"series":[{"ticker":"ZZZZ","points":[{"date":"2026-07-01","price":1}]}]}`,
	}
	store := newMemStore()

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"DEC.PA"})
	require.NoError(t, err)
	assert.Empty(t, result.Series)
	assert.Zero(t, store.saves)
}

func TestGetOrFetchTotalFailureKeepsCachedProgress(t *testing.T) {
	client := &mockClient{err: &common.ProviderError{Kind: common.KindPermanent, Err: errors.New("bad request")}}
	store := newMemStore()
	seedSeries(store, "DEC.PA", 12) // resolves from cache
	seedSeries(store, "LAMR", 4)    // too short, needs fetch

	result, err := newTestService(client, store).GetOrFetch(context.Background(), models.Period1M, []string{"DEC.PA", "LAMR"})
	require.NoError(t, err, "fetch failure is recovered, not propagated")

	require.Len(t, result.Series, 2, "cache-resolved and short cached series both survive")
	assert.Len(t, result.Series[0].Points, 10)
	assert.Len(t, result.Series[1].Points, 4)
}

func TestGetOrFetchRejectsUnknownPeriod(t *testing.T) {
	_, err := newTestService(&mockClient{}, newMemStore()).GetOrFetch(context.Background(), "2W", []string{"DEC.PA"})
	assert.Error(t, err)
}

func TestMergePointsUnionSortedDeduped(t *testing.T) {
	existing := []models.PricePoint{
		{Date: "2026-07-02", Price: 2},
		{Date: "2026-07-01", Price: 1},
	}
	incoming := []models.PricePoint{
		{Date: "2026-07-03", Price: 3},
		{Date: "2026-07-02", Price: 22},
	}

	merged := mergePoints(existing, incoming)
	require.Len(t, merged, 3)
	assert.Equal(t, "2026-07-01", merged[0].Date)
	assert.Equal(t, "2026-07-02", merged[1].Date)
	assert.Equal(t, 22.0, merged[1].Price, "new point wins the duplicate date")
	assert.Equal(t, "2026-07-03", merged[2].Date)
}
