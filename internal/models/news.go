package models

import "time"

// NewsTag classifies a news item for filtering in the terminal.
type NewsTag string

const (
	TagMarket     NewsTag = "Market"
	TagCorporate  NewsTag = "Corporate"
	TagEarnings   NewsTag = "Earnings"
	TagDeals      NewsTag = "Deals"
	TagDigital    NewsTag = "Digital"
	TagRegulation NewsTag = "Regulation"
)

// NewsItem is one sector or company news entry.
type NewsItem struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Title  string  `json:"title"`
	Time   string  `json:"time,omitempty"` // relative display time from the provider, e.g. "2h ago"
	Date   string  `json:"date,omitempty"` // "YYYY-MM-DD" when the provider gives one
	Tag    NewsTag `json:"tag,omitempty"`
	URL    string  `json:"url,omitempty"`
	Ticker string  `json:"ticker,omitempty"`
	Region string  `json:"region,omitempty"`
}

// EventItem is one calendar entry (earnings date, AGM, report release).
type EventItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"` // "YYYY-MM-DD"
	Type   string `json:"type,omitempty"`
	Ticker string `json:"ticker,omitempty"`
}

// DocumentItem is one published company document.
type DocumentItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // "PDF", "PPT", "ESG", "Report"
	Title string `json:"title"`
	Date  string `json:"date"`
	URL   string `json:"url,omitempty"`
}

// SentimentSummary is the provider's sector sentiment read.
type SentimentSummary struct {
	Label        string    `json:"label"` // "bullish", "bearish", "neutral", "mixed"
	Description  string    `json:"description"`
	KeyTakeaways []string  `json:"key_takeaways,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}
