package models

import "time"

// The bundled default dataset: the tracked OOH universe the terminal starts
// from and the authoritative baseline the snapshot repair pass reconciles
// cached entities against. Quote and fundamentals fields start blank and are
// filled by the first successful sync.

func defaultCompany(id, name, ticker, currency string, rating AnalystRating, desc string, shares float64) *Company {
	c := &Company{
		ID:                id,
		Name:              name,
		Ticker:            ticker,
		Currency:          currency,
		Rating:            rating,
		Description:       desc,
		SharesOutstanding: shares,
		MarketCap:         "--",
		EV:                "--",
		NetDebt:           "--",
		DividendYield:     "--",
	}
	for _, y := range TrackedYears() {
		c.SetFigures(y, YearFigures{
			Revenue: "--", EBITDA: "--", EBIT: "--",
			NetIncome: "--", Capex: "--", FCF: "--",
			DividendPerShare: "--",
		})
	}
	return c
}

// DefaultCompanies returns the bundled entity list.
func DefaultCompanies() []*Company {
	companies := []*Company{
		defaultCompany("jcdecaux", "JCDecaux SE", "DEC.PA", "EUR", RatingBuy,
			"Global leader in outdoor advertising.", 212),
		defaultCompany("outfront", "Outfront Media Inc.", "OUT", "USD", RatingHold,
			"Large-format billboards and transit advertising across the US.", 167),
		defaultCompany("stroeer", "Ströer SE & Co. KGaA", "SAX.DE", "EUR", RatingBuy,
			"German OOH and digital media specialist.", 57),
		defaultCompany("clearchannel", "Clear Channel Outdoor", "CCO", "USD", RatingSell,
			"Global player undergoing geographic restructuring.", 485),
		defaultCompany("arabian", "Arabian Contracting Services", "4071.SR", "SAR", RatingStrongBuy,
			"Leading outdoor advertiser in Saudi Arabia.", 50),
		defaultCompany("lamar", "Lamar Advertising Company", "LAMR", "USD", RatingHold,
			"US billboard REIT.", 102),
	}

	dps := map[string]map[int]string{
		"DEC.PA":  {BaseYear: "0.70", ForwardYear: "0.80", NextYear: "0.90"},
		"OUT":     {BaseYear: "1.22", ForwardYear: "1.25"},
		"SAX.DE":  {BaseYear: "1.85", ForwardYear: "1.95", NextYear: "2.10"},
		"CCO":     {BaseYear: "0.00"},
		"4071.SR": {BaseYear: "5.50", ForwardYear: "6.00"},
		"LAMR":    {BaseYear: "5.20", ForwardYear: "5.40", NextYear: "5.60"},
	}
	for _, c := range companies {
		for year, v := range dps[c.Ticker] {
			f := c.Figures(year)
			f.DividendPerShare = v
			c.SetFigures(year, f)
		}
	}

	return companies
}

// SeedNews returns the placeholder news shown before the first sync.
func SeedNews() []NewsItem {
	return []NewsItem{
		{ID: "seed-1", Source: "System", Tag: TagMarket, Title: "Initializing terminal data feed...", Time: "Live"},
	}
}

// DefaultSnapshot builds the snapshot used when no persisted state exists
// or the persisted state cannot be recovered.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		Companies:     DefaultCompanies(),
		News:          SeedNews(),
		Documents:     map[string][]DocumentItem{},
		Freshness:     map[Category]time.Time{},
	}
}
