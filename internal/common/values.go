package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Financial value parsing. Provider payloads carry magnitudes as display
// strings ("920 M", "4,2 Md", "3.5%") with localized decimals and mixed
// unit suffixes. These functions are total: any unparseable or placeholder
// input yields 0, because callers always need a safe numeric default for
// downstream arithmetic. The canonical unit is millions.

// ParseFinancialValue converts a magnitude-bearing string or a number into
// millions. Numbers pass through unchanged.
func ParseFinancialValue(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parseFinancialString(x)
	}
	return 0
}

func parseFinancialString(s string) float64 {
	if s == "" || s == "--" {
		return 0
	}

	// Keep only sign, digits, and decimal separators
	var b strings.Builder
	for _, r := range s {
		if r == '-' || r == '.' || r == ',' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	// First comma is a decimal separator, any others are grouping noise
	if i := strings.IndexByte(clean, ','); i >= 0 {
		clean = clean[:i] + "." + strings.ReplaceAll(clean[i+1:], ",", "")
	}

	if len(clean) > 15 {
		clean = clean[:15]
	}

	numeric := parseLeadingFloat(clean)

	// Unit suffix comes from the raw string: billion-class tokens ("B",
	// French "Md") scale up, thousand-class scales down, million or no
	// suffix is the canonical unit.
	upper := strings.ToUpper(s)
	multiplier := 1.0
	switch {
	case strings.Contains(upper, "MD") || strings.Contains(upper, "B"):
		multiplier = 1000
	case strings.Contains(upper, "M"):
		multiplier = 1
	case strings.Contains(upper, "K"):
		multiplier = 0.001
	}

	return numeric * multiplier
}

// parseLeadingFloat parses the longest numeric prefix of s, matching the
// lenient parse semantics the rest of the pipeline expects ("3.5x" -> 3.5).
func parseLeadingFloat(s string) float64 {
	end := 0
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' || c == '+' {
			if i != 0 {
				break
			}
		} else if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end = i + 1
	}

	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return 0
}

// ParsePercent strips a trailing percent sign and returns the bare number.
func ParsePercent(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case string:
		clean := strings.TrimSpace(strings.ReplaceAll(x, "%", ""))
		return parseLeadingFloat(clean)
	}
	return 0
}

// CalculateEV returns enterprise value in millions. NaN inputs count as 0.
func CalculateEV(marketCap, netDebt float64) float64 {
	if math.IsNaN(marketCap) {
		marketCap = 0
	}
	if math.IsNaN(netDebt) {
		netDebt = 0
	}
	return marketCap + netDebt
}

// FormatCurrencyShort renders a value in millions as a short display string
// ("13.65 B", "920.0 M"). Zero and unparseable values render as "--", and
// short strings that already carry a unit suffix pass through unchanged.
func FormatCurrencyShort(v any) string {
	if v == nil {
		return "--"
	}
	if s, ok := v.(string); ok {
		if s == "" || s == "--" {
			return "--"
		}
		if len(s) < 10 && (strings.Contains(s, "B") || strings.Contains(s, "M")) {
			return s
		}
	}

	num := ParseFinancialValue(v)
	if num == 0 || math.IsNaN(num) {
		return "--"
	}
	if math.Abs(num) >= 1000 {
		return fmt.Sprintf("%.2f B", num/1000)
	}
	return fmt.Sprintf("%.1f M", num)
}

// FormatMultiple renders a valuation multiple, with 0 as the "not meaningful"
// sentinel.
func FormatMultiple(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	return fmt.Sprintf("%.1fx", v)
}
