package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFinancialValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"plain millions", "920 M", 920},
		{"millions no space", "920M", 920},
		{"billions", "4.24 B", 4240},
		{"french milliard", "4,24 Md", 4240},
		{"thousands", "500 K", 0.5},
		{"no suffix", "3570", 3570},
		{"comma decimal", "3570,5 M", 3570.5},
		{"currency noise", "$1,5 B", 1500},
		{"negative", "-120 M", -120},
		{"placeholder", "--", 0},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
		{"number passthrough", 42.5, 42.5},
		{"int passthrough", 7, 7.0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseFinancialValue(tt.input), 1e-9)
		})
	}
}

func TestParseFinancialValueNeverPanics(t *testing.T) {
	inputs := []any{"......", "-,-,-", "MMM", "BKM", struct{}{}, []string{"x"}}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ParseFinancialValue(in) })
	}
}

// Round-trip stability: formatting a parsed value and re-parsing it must
// yield the same number.
func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{"920 M", "4240 M", "13650 M", "0.70", "3.5 B", "785 M"}
	for _, s := range inputs {
		parsed := ParseFinancialValue(s)
		formatted := FormatCurrencyShort(parsed)
		assert.InDelta(t, parsed, ParseFinancialValue(formatted), 1e-6,
			"round trip failed for %q via %q", s, formatted)
	}
}

func TestParsePercent(t *testing.T) {
	assert.InDelta(t, 2.4, ParsePercent("2.4%"), 1e-9)
	assert.InDelta(t, 6.5, ParsePercent(" 6.5 % "), 1e-9)
	assert.InDelta(t, 3.1, ParsePercent(3.1), 1e-9)
	assert.Zero(t, ParsePercent("--"))
	assert.Zero(t, ParsePercent(""))
	assert.Zero(t, ParsePercent(nil))
}

func TestCalculateEV(t *testing.T) {
	assert.Equal(t, 5160.0, CalculateEV(4240, 920))
	assert.Equal(t, 920.0, CalculateEV(nan(), 920))
	assert.Equal(t, 0.0, CalculateEV(nan(), nan()))
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestFormatCurrencyShort(t *testing.T) {
	assert.Equal(t, "920.0 M", FormatCurrencyShort(920.0))
	assert.Equal(t, "13.65 B", FormatCurrencyShort(13650.0))
	assert.Equal(t, "--", FormatCurrencyShort(0.0))
	assert.Equal(t, "--", FormatCurrencyShort("--"))
	assert.Equal(t, "--", FormatCurrencyShort(nil))
	// Short strings that already carry a unit pass through
	assert.Equal(t, "4240 M", FormatCurrencyShort("4240 M"))
	assert.Equal(t, "3.5 B", FormatCurrencyShort("3.5 B"))
}

func TestFormatMultiple(t *testing.T) {
	assert.Equal(t, "8.3x", FormatMultiple(8.31))
	assert.Equal(t, "--", FormatMultiple(0))
	assert.Equal(t, "--", FormatMultiple(nan()))
}

func ExampleFormatCurrencyShort() {
	fmt.Println(FormatCurrencyShort(50.0))
	// Output: 50.0 M
}
