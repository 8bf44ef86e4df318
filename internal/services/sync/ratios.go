package sync

import (
	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// ComputeRatios derives the full ratio block for one company from its raw
// fundamentals plus the current quote. Pure and idempotent: identical input
// yields identical output, and the result is always overwritten wholesale.
//
// Price-dependent multiples are emitted only when price > 0; otherwise they
// stay 0 as a "not meaningful yet" sentinel. Zero denominators yield 0,
// never NaN or Inf.
func ComputeRatios(c *models.Company) models.Derived {
	marketCap := c.Price * c.SharesOutstanding
	netDebt := common.ParseFinancialValue(c.NetDebt)
	ev := common.CalculateEV(marketCap, netDebt)

	derived := models.Derived{
		MarketCap: marketCap,
		EV:        ev,
		Years:     make(map[int]models.YearRatios, 3),
	}

	for _, year := range models.TrackedYears() {
		figures := c.Figures(year)

		revenue := common.ParseFinancialValue(figures.Revenue)
		ebitda := common.ParseFinancialValue(figures.EBITDA)
		ebit := common.ParseFinancialValue(figures.EBIT)
		netIncome := common.ParseFinancialValue(figures.NetIncome)
		capex := common.ParseFinancialValue(figures.Capex)
		fcf := common.ParseFinancialValue(figures.FCF)
		dividendPerShare := common.ParseFinancialValue(figures.DividendPerShare)

		ratios := models.YearRatios{
			EBITDAMargin:   safeRatio(ebitda, revenue) * 100,
			EBITMargin:     safeRatio(ebit, revenue) * 100,
			CapexToRevenue: safeRatio(capex, revenue) * 100,
			FCFToRevenue:   safeRatio(fcf, revenue) * 100,
		}

		if c.Price > 0 {
			ratios.EVEBITDA = safeRatio(ev, ebitda)
			ratios.EVEBIT = safeRatio(ev, ebit)
			ratios.EVSales = safeRatio(ev, revenue)
			ratios.PER = safeRatio(marketCap, netIncome)
			ratios.EVEBITDACapex = safeRatio(ev, ebitda-capex)
			ratios.DividendYield = safeRatio(dividendPerShare, c.Price) * 100
		}

		derived.Years[year] = ratios
	}

	return derived
}

// applyDerived recomputes a company's ratio block and refreshes the display
// strings that mirror derived values.
func applyDerived(c *models.Company) {
	c.Derived = ComputeRatios(c)
	c.MarketCap = common.FormatCurrencyShort(c.Derived.MarketCap)
	c.EV = common.FormatCurrencyShort(c.Derived.EV)
}

// safeRatio divides with a zero-denominator guard.
func safeRatio(numerator, denominator float64) float64 {
	if denominator > 0 {
		return numerator / denominator
	}
	return 0
}
