package sync

import (
	"time"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// migrate brings a snapshot persisted under an older schema version up to
// the current one. Raw data is kept; derived blocks are cleared and rebuilt
// by the caller's recompute pass.
func (s *Service) migrate(snapshot *models.Snapshot) {
	if snapshot.SchemaVersion == models.SchemaVersion {
		return
	}

	s.logger.Info().
		Str("from", snapshot.SchemaVersion).
		Str("to", models.SchemaVersion).
		Msg("Migrating snapshot schema")

	for _, company := range snapshot.Companies {
		company.Derived = models.Derived{}
	}
	snapshot.SchemaVersion = models.SchemaVersion
}

// repair reconciles cached companies against the bundled default dataset:
// companies missing from the cache are added, blank identity and
// fundamentals fields are backfilled from the defaults, and cached
// live-quote fields (price, change) always win over default values.
func (s *Service) repair(snapshot *models.Snapshot) {
	for _, fallback := range models.DefaultCompanies() {
		company := snapshot.FindCompany(fallback.Ticker)
		if company == nil {
			s.logger.Debug().Str("ticker", fallback.Ticker).Msg("Default company missing from snapshot, adding")
			snapshot.Companies = append(snapshot.Companies, fallback.Clone())
			continue
		}
		backfillCompany(company, fallback)
	}

	if len(snapshot.News) == 0 {
		snapshot.News = models.SeedNews()
	}
	if snapshot.Documents == nil {
		snapshot.Documents = make(map[string][]models.DocumentItem)
	}
	if snapshot.Freshness == nil {
		snapshot.Freshness = make(map[models.Category]time.Time)
	}
}

// backfillCompany fills blank fields from the default record without
// touching populated ones. Price and Change are deliberately left alone:
// the cached quote is fresher than any bundled default.
func backfillCompany(company *models.Company, fallback *models.Company) {
	if company.ID == "" {
		company.ID = fallback.ID
	}
	if company.Name == "" {
		company.Name = fallback.Name
	}
	if company.Currency == "" {
		company.Currency = fallback.Currency
	}
	if company.SharesOutstanding == 0 {
		company.SharesOutstanding = fallback.SharesOutstanding
	}
	if blank(company.NetDebt) {
		company.NetDebt = fallback.NetDebt
	}
	if blank(company.DividendYield) {
		company.DividendYield = fallback.DividendYield
	}
	if company.Rating == "" {
		company.Rating = fallback.Rating
	}
	if company.TargetPrice == nil {
		company.TargetPrice = fallback.TargetPrice
	}
	if company.Description == "" {
		company.Description = fallback.Description
	}

	for _, year := range models.TrackedYears() {
		current := company.Figures(year)
		overlayMissingFigures(&current, fallback.Figures(year))
		company.SetFigures(year, current)
	}
}

// overlayMissingFigures is the inverse overlay of the merge path: the
// default value lands only where the cached figure is blank.
func overlayMissingFigures(current *models.YearFigures, fallback models.YearFigures) {
	if blank(current.Revenue) {
		current.Revenue = fallback.Revenue
	}
	if blank(current.EBITDA) {
		current.EBITDA = fallback.EBITDA
	}
	if blank(current.EBIT) {
		current.EBIT = fallback.EBIT
	}
	if blank(current.NetIncome) {
		current.NetIncome = fallback.NetIncome
	}
	if blank(current.Capex) {
		current.Capex = fallback.Capex
	}
	if blank(current.FCF) {
		current.FCF = fallback.FCF
	}
	if blank(current.DividendPerShare) {
		current.DividendPerShare = fallback.DividendPerShare
	}
}

// blank reports whether a display string carries no data. "--" is the
// bundled placeholder and counts as blank for backfill purposes.
func blank(s string) bool {
	return s == "" || s == "--"
}
