package common

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// Freshness TTLs per refresh category. Live quotes churn fastest; analyst
// ratings and sector sentiment move on a daily cadence.
const (
	FreshnessQuotes       = 5 * time.Minute
	FreshnessFundamentals = 1 * time.Hour
	FreshnessRatings      = 24 * time.Hour
	FreshnessTargets      = 24 * time.Hour
	FreshnessNews         = 15 * time.Minute
	FreshnessHighlights   = 15 * time.Minute
	FreshnessSentiment    = 24 * time.Hour
	FreshnessDocuments    = 2 * time.Hour
	FreshnessCalendar     = 4 * time.Hour
)

// FreshnessWindow returns the TTL for a category.
func FreshnessWindow(cat models.Category) time.Duration {
	switch cat {
	case models.CategoryQuotes:
		return FreshnessQuotes
	case models.CategoryFundamentals:
		return FreshnessFundamentals
	case models.CategoryRatings:
		return FreshnessRatings
	case models.CategoryTargets:
		return FreshnessTargets
	case models.CategoryNews:
		return FreshnessNews
	case models.CategoryHighlights:
		return FreshnessHighlights
	case models.CategorySentiment:
		return FreshnessSentiment
	case models.CategoryDocuments:
		return FreshnessDocuments
	case models.CategoryCalendar:
		return FreshnessCalendar
	}
	return FreshnessFundamentals
}

// IsFresh returns true if the timestamp is within the TTL as of now.
// Callers pass their own clock so staleness decisions stay testable.
func IsFresh(updated time.Time, ttl time.Duration, now time.Time) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}

// FormatAge renders a timestamp as a human-readable age ("4 minutes ago").
// A zero timestamp means the category has never been fetched.
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
