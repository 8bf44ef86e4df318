package models

import "time"

// SchemaVersion tags persisted snapshots. Bump when the snapshot shape
// changes in a way that requires a migration pass on load.
const SchemaVersion = "v2"

// Category names one independently refreshed slice of the snapshot. Each
// category owns disjoint fields and has its own freshness window.
type Category string

const (
	CategoryQuotes       Category = "quotes"
	CategoryFundamentals Category = "fundamentals"
	CategoryRatings      Category = "ratings"
	CategoryTargets      Category = "targets"
	CategoryNews         Category = "news"
	CategoryHighlights   Category = "highlights"
	CategorySentiment    Category = "sentiment"
	CategoryDocuments    Category = "documents"
	CategoryCalendar     Category = "calendar"
)

// Categories lists every refresh category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryQuotes,
		CategoryFundamentals,
		CategoryRatings,
		CategoryTargets,
		CategoryNews,
		CategoryHighlights,
		CategorySentiment,
		CategoryDocuments,
		CategoryCalendar,
	}
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Snapshot is the complete serializable application state. The durable
// store is a passive persistence target for it; all mutation happens by
// constructing a new snapshot and replacing the old one.
type Snapshot struct {
	SchemaVersion string `json:"schema_version"`

	Companies  []*Company                `json:"companies"`
	News       []NewsItem                `json:"news,omitempty"`
	Highlights []NewsItem                `json:"highlights,omitempty"`
	Events     []EventItem               `json:"events,omitempty"`
	Documents  map[string][]DocumentItem `json:"documents,omitempty"` // keyed by upper-cased ticker
	Sentiment  *SentimentSummary         `json:"sentiment,omitempty"`

	Analysis            string   `json:"analysis,omitempty"`
	MarketOpportunities []string `json:"market_opportunities,omitempty"`
	MarketRisks         []string `json:"market_risks,omitempty"`

	LastUpdated time.Time `json:"last_updated"`

	// Freshness records the last successful fetch per category. Entries are
	// written only on success and read on every orchestration decision.
	Freshness map[Category]time.Time `json:"freshness,omitempty"`
}

// Tickers returns the tickers of all tracked companies, in snapshot order.
func (s *Snapshot) Tickers() []string {
	out := make([]string, 0, len(s.Companies))
	for _, c := range s.Companies {
		if c.Ticker != "" {
			out = append(out, c.Ticker)
		}
	}
	return out
}

// FindCompany returns the company with the exact ticker, or nil.
func (s *Snapshot) FindCompany(ticker string) *Company {
	for _, c := range s.Companies {
		if c.Ticker == ticker {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot. Refresh pipelines mutate the
// clone and swap it in atomically, never the live snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := *s

	out.Companies = make([]*Company, len(s.Companies))
	for i, c := range s.Companies {
		out.Companies[i] = c.Clone()
	}

	out.News = append([]NewsItem(nil), s.News...)
	out.Highlights = append([]NewsItem(nil), s.Highlights...)
	out.Events = append([]EventItem(nil), s.Events...)

	if s.Documents != nil {
		out.Documents = make(map[string][]DocumentItem, len(s.Documents))
		for k, docs := range s.Documents {
			out.Documents[k] = append([]DocumentItem(nil), docs...)
		}
	}

	if s.Sentiment != nil {
		sent := *s.Sentiment
		sent.KeyTakeaways = append([]string(nil), s.Sentiment.KeyTakeaways...)
		out.Sentiment = &sent
	}

	out.MarketOpportunities = append([]string(nil), s.MarketOpportunities...)
	out.MarketRisks = append([]string(nil), s.MarketRisks...)

	if s.Freshness != nil {
		out.Freshness = make(map[Category]time.Time, len(s.Freshness))
		for k, v := range s.Freshness {
			out.Freshness[k] = v
		}
	}

	return &out
}

// StampFreshness records a successful fetch for a category.
func (s *Snapshot) StampFreshness(cat Category, t time.Time) {
	if s.Freshness == nil {
		s.Freshness = make(map[Category]time.Time)
	}
	s.Freshness[cat] = t
}
