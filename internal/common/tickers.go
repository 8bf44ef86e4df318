package common

import "strings"

// Ticker identity resolution. Provider records and tracked entities come
// from independent sources, so the same company can appear as "DEC.PA",
// "dec_pa", or a bare "DEC". Matching runs in order of decreasing
// confidence: exact (case-insensitive), separator-normalized, then
// substring containment in either direction. Containment keeps the first
// candidate that matches; short tickers can therefore collide — callers
// that care must pre-filter their candidate sets.

// NormalizeTicker upper-cases a ticker and folds the underscore separator
// variant some sources emit ("DEC_PA") back to the dotted form.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "_", "."))
}

// MatchTicker finds the candidate referring to the same entity as target.
func MatchTicker(target string, candidates []string) (string, bool) {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "", false
	}

	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c), trimmed) {
			return c, true
		}
	}

	normalized := NormalizeTicker(trimmed)
	for _, c := range candidates {
		if NormalizeTicker(c) == normalized {
			return c, true
		}
	}

	for _, c := range candidates {
		nc := NormalizeTicker(c)
		if nc == "" {
			continue
		}
		if strings.Contains(nc, normalized) || strings.Contains(normalized, nc) {
			return c, true
		}
	}

	return "", false
}
