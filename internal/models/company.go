// Package models defines the data model for the OOH terminal sync engine.
package models

// AnalystRating is the consensus analyst recommendation for a company.
type AnalystRating string

const (
	RatingBuy       AnalystRating = "Buy"
	RatingStrongBuy AnalystRating = "Strong Buy"
	RatingHold      AnalystRating = "Hold"
	RatingSell      AnalystRating = "Sell"
	RatingNA        AnalystRating = "N/A"
)

// Fiscal years tracked by the terminal. BaseYear is the reported year,
// the following two are estimate years.
const (
	BaseYear    = 2024
	ForwardYear = 2025
	NextYear    = 2026
)

// TrackedYears lists the fiscal years in ascending order.
func TrackedYears() []int {
	return []int{BaseYear, ForwardYear, NextYear}
}

// YearFigures holds one fiscal year's raw fundamentals as display-formatted
// magnitude strings (e.g. "920 M", "3.5 B", "--"). Strings are the source of
// truth; numeric values are always re-derived through the value parser.
type YearFigures struct {
	Revenue          string `json:"revenue,omitempty"`
	EBITDA           string `json:"ebitda,omitempty"`
	EBIT             string `json:"ebit,omitempty"`
	NetIncome        string `json:"net_income,omitempty"`
	Capex            string `json:"capex,omitempty"`
	FCF              string `json:"fcf,omitempty"`
	DividendPerShare string `json:"dividend_per_share,omitempty"`
}

// YearRatios holds the derived metrics for one fiscal year. A zero value
// for a price-dependent multiple means "not meaningful yet" and is rendered
// as "--" by consumers.
type YearRatios struct {
	EVEBITDA       float64 `json:"ev_ebitda"`
	EVEBIT         float64 `json:"ev_ebit"`
	EVSales        float64 `json:"ev_sales"`
	PER            float64 `json:"per"`
	EVEBITDACapex  float64 `json:"ev_ebitda_capex"`
	EBITDAMargin   float64 `json:"ebitda_margin"`
	EBITMargin     float64 `json:"ebit_margin"`
	CapexToRevenue float64 `json:"capex_to_revenue"`
	FCFToRevenue   float64 `json:"fcf_to_revenue"`
	DividendYield  float64 `json:"dividend_yield"`
}

// Derived is the full set of fields recomputed from raw fundamentals plus
// the current quote. It is overwritten wholesale on every recomputation and
// is never a source of truth.
type Derived struct {
	MarketCap float64            `json:"market_cap"` // millions
	EV        float64            `json:"ev"`         // millions
	Years     map[int]YearRatios `json:"years,omitempty"`
}

// Company is one tracked entity: identity, current quote, raw fundamentals
// per fiscal year, analyst data, and the derived ratio block.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Currency string `json:"currency"`

	Price  float64 `json:"price"`
	Change float64 `json:"change"` // daily change, percent

	SharesOutstanding float64 `json:"shares_outstanding"` // millions

	MarketCap     string `json:"market_cap"` // display string, refreshed from Derived
	EV            string `json:"ev"`
	NetDebt       string `json:"net_debt"`
	DividendYield string `json:"dividend_yield"`

	Years map[int]YearFigures `json:"years,omitempty"`

	Rating      AnalystRating `json:"rating"`
	TargetPrice *float64      `json:"target_price,omitempty"`
	Description string        `json:"description,omitempty"`

	Derived Derived `json:"derived"`
}

// Figures returns the raw fundamentals for a fiscal year, or a zero value
// when the year has never been populated.
func (c *Company) Figures(year int) YearFigures {
	if c.Years == nil {
		return YearFigures{}
	}
	return c.Years[year]
}

// SetFigures stores the raw fundamentals for a fiscal year.
func (c *Company) SetFigures(year int, f YearFigures) {
	if c.Years == nil {
		c.Years = make(map[int]YearFigures, 3)
	}
	c.Years[year] = f
}

// Clone returns a deep copy of the company.
func (c *Company) Clone() *Company {
	out := *c
	if c.TargetPrice != nil {
		tp := *c.TargetPrice
		out.TargetPrice = &tp
	}
	if c.Years != nil {
		out.Years = make(map[int]YearFigures, len(c.Years))
		for y, f := range c.Years {
			out.Years[y] = f
		}
	}
	if c.Derived.Years != nil {
		out.Derived.Years = make(map[int]YearRatios, len(c.Derived.Years))
		for y, r := range c.Derived.Years {
			out.Derived.Years[y] = r
		}
	}
	return &out
}

// RawCompany is the best-effort record shape the data provider returns for
// one company. Every field is optional; magnitudes stay strings so the
// value parser owns all numeric interpretation.
type RawCompany struct {
	Ticker            string   `json:"ticker"`
	Price             *float64 `json:"price,omitempty"`
	Change            *float64 `json:"change,omitempty"`
	MarketCap         string   `json:"marketCap,omitempty"`
	NetDebt           string   `json:"netDebt,omitempty"`
	SharesOutstanding *float64 `json:"sharesOutstanding,omitempty"`

	DividendYield     string `json:"dividendYield,omitempty"`
	DividendYield2025 string `json:"dividendYield2025,omitempty"`
	DividendYield2026 string `json:"dividendYield2026,omitempty"`

	DividendPerShare2024 string `json:"dividendPerShare2024,omitempty"`
	DividendPerShare2025 string `json:"dividendPerShare2025,omitempty"`
	DividendPerShare2026 string `json:"dividendPerShare2026,omitempty"`

	Revenue2024 string `json:"revenue2024,omitempty"`
	Revenue2025 string `json:"revenue2025,omitempty"`
	Revenue2026 string `json:"revenue2026,omitempty"`

	EBITDA2024 string `json:"ebitda2024,omitempty"`
	EBITDA2025 string `json:"ebitda2025,omitempty"`
	EBITDA2026 string `json:"ebitda2026,omitempty"`

	EBIT2024 string `json:"ebit2024,omitempty"`
	EBIT2025 string `json:"ebit2025,omitempty"`
	EBIT2026 string `json:"ebit2026,omitempty"`

	NetIncome2024 string `json:"netIncome2024,omitempty"`
	NetIncome2025 string `json:"netIncome2025,omitempty"`
	NetIncome2026 string `json:"netIncome2026,omitempty"`

	Capex2024 string `json:"capex2024,omitempty"`
	Capex2025 string `json:"capex2025,omitempty"`
	Capex2026 string `json:"capex2026,omitempty"`

	FCF2024 string `json:"fcf2024,omitempty"`
	FCF2025 string `json:"fcf2025,omitempty"`
	FCF2026 string `json:"fcf2026,omitempty"`

	Rating      string   `json:"rating,omitempty"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
}

// Figures maps the flat per-year provider fields onto a YearFigures block.
func (r *RawCompany) Figures(year int) YearFigures {
	switch year {
	case BaseYear:
		return YearFigures{
			Revenue: r.Revenue2024, EBITDA: r.EBITDA2024, EBIT: r.EBIT2024,
			NetIncome: r.NetIncome2024, Capex: r.Capex2024, FCF: r.FCF2024,
			DividendPerShare: r.DividendPerShare2024,
		}
	case ForwardYear:
		return YearFigures{
			Revenue: r.Revenue2025, EBITDA: r.EBITDA2025, EBIT: r.EBIT2025,
			NetIncome: r.NetIncome2025, Capex: r.Capex2025, FCF: r.FCF2025,
			DividendPerShare: r.DividendPerShare2025,
		}
	case NextYear:
		return YearFigures{
			Revenue: r.Revenue2026, EBITDA: r.EBITDA2026, EBIT: r.EBIT2026,
			NetIncome: r.NetIncome2026, Capex: r.Capex2026, FCF: r.FCF2026,
			DividendPerShare: r.DividendPerShare2026,
		}
	}
	return YearFigures{}
}
