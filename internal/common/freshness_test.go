package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bruno248/ooh-terminal/internal/models"
)

func TestIsFresh(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsFresh(now.Add(-2*time.Minute), FreshnessQuotes, now))
	assert.False(t, IsFresh(now.Add(-10*time.Minute), FreshnessQuotes, now))
	assert.False(t, IsFresh(time.Time{}, FreshnessQuotes, now))
}

func TestFreshnessWindowPerCategory(t *testing.T) {
	assert.Equal(t, 5*time.Minute, FreshnessWindow(models.CategoryQuotes))
	assert.Equal(t, time.Hour, FreshnessWindow(models.CategoryFundamentals))
	assert.Equal(t, 15*time.Minute, FreshnessWindow(models.CategoryNews))
	assert.Equal(t, 24*time.Hour, FreshnessWindow(models.CategorySentiment))
	assert.Equal(t, 2*time.Hour, FreshnessWindow(models.CategoryDocuments))
	assert.Equal(t, 4*time.Hour, FreshnessWindow(models.CategoryCalendar))
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "never", FormatAge(time.Time{}))
	assert.Contains(t, FormatAge(time.Now().Add(-3*time.Minute)), "minutes ago")
}
