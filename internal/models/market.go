package models

// PricePoint is one daily close for a ticker. Date is "YYYY-MM-DD", which
// sorts chronologically as a plain string.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PriceSeries is the date-ordered price history for one ticker.
type PriceSeries struct {
	Ticker   string       `json:"ticker"`
	Name     string       `json:"name"`
	Currency string       `json:"currency"`
	Points   []PricePoint `json:"points"`
}

// HistoricalPrices is the payload returned for a period query: one series
// per resolved ticker, each sliced to the period's trailing window.
type HistoricalPrices struct {
	Period HistoryPeriod `json:"period"`
	Series []PriceSeries `json:"series"`
}

// HistoryPeriod selects how much price history a query covers.
type HistoryPeriod string

const (
	Period1M HistoryPeriod = "1M"
	Period3M HistoryPeriod = "3M"
	Period6M HistoryPeriod = "6M"
	Period1Y HistoryPeriod = "1Y"
)

// RequiredPoints is the minimum number of cached points at which a fetch is
// skipped for this period. The exact numbers are tuning constants.
func (p HistoryPeriod) RequiredPoints() int {
	switch p {
	case Period1M:
		return 10
	case Period3M:
		return 30
	case Period6M:
		return 60
	case Period1Y:
		return 120
	}
	return 0
}

// Valid reports whether p is one of the supported periods.
func (p HistoryPeriod) Valid() bool {
	return p.RequiredPoints() > 0
}
