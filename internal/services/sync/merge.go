package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/models"
)

// Per-category merge semantics. Each merge mutates a cloned snapshot only;
// the caller swaps it in after success. Provider records that resolve to no
// tracked company are skipped silently. Decode failures return an error the
// caller treats as "keep cached data".

type quoteRecord struct {
	Ticker string   `json:"ticker"`
	Price  *float64 `json:"price,omitempty"`
	Change *float64 `json:"change,omitempty"`
}

type ratingRecord struct {
	Ticker      string   `json:"ticker"`
	Rating      string   `json:"rating,omitempty"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
}

type documentsRecord struct {
	Ticker string                `json:"ticker"`
	Items  []models.DocumentItem `json:"items"`
}

type sentimentPayload struct {
	Label         string   `json:"label"`
	Description   string   `json:"description"`
	KeyTakeaways  []string `json:"keyTakeaways,omitempty"`
	Analysis      string   `json:"analysis,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
	Risks         []string `json:"risks,omitempty"`
}

func (s *Service) merge(snapshot *models.Snapshot, category models.Category, text string) error {
	switch category {
	case models.CategoryQuotes:
		return s.mergeQuotes(snapshot, text)
	case models.CategoryFundamentals:
		return s.mergeFundamentals(snapshot, text)
	case models.CategoryRatings, models.CategoryTargets:
		return s.mergeRatings(snapshot, category, text)
	case models.CategoryNews:
		return s.mergeNews(snapshot, text)
	case models.CategoryHighlights:
		return s.mergeHighlights(snapshot, text)
	case models.CategorySentiment:
		return s.mergeSentiment(snapshot, text)
	case models.CategoryDocuments:
		return s.mergeDocuments(snapshot, text)
	case models.CategoryCalendar:
		return s.mergeCalendar(snapshot, text)
	}
	return fmt.Errorf("no merge for category %q", category)
}

// resolveCompany maps a provider ticker onto a tracked company, or nil.
func resolveCompany(snapshot *models.Snapshot, providerTicker string) *models.Company {
	ticker, ok := common.MatchTicker(providerTicker, snapshot.Tickers())
	if !ok {
		return nil
	}
	return snapshot.FindCompany(ticker)
}

func (s *Service) mergeQuotes(snapshot *models.Snapshot, text string) error {
	var payload struct {
		Companies []quoteRecord `json:"companies"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("quotes payload: %w", err)
	}

	updated := 0
	for _, record := range payload.Companies {
		company := resolveCompany(snapshot, record.Ticker)
		if company == nil {
			s.logger.Debug().Str("provider_ticker", record.Ticker).Msg("Unresolved quote record skipped")
			continue
		}
		if record.Price != nil && *record.Price > 0 {
			company.Price = *record.Price
		}
		if record.Change != nil {
			company.Change = *record.Change
		}
		applyDerived(company)
		updated++
	}

	s.logger.Debug().Int("updated", updated).Int("received", len(payload.Companies)).Msg("Quotes merged")
	return nil
}

func (s *Service) mergeFundamentals(snapshot *models.Snapshot, text string) error {
	var payload struct {
		Companies []models.RawCompany `json:"companies"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("fundamentals payload: %w", err)
	}

	for _, raw := range payload.Companies {
		company := resolveCompany(snapshot, raw.Ticker)
		if company == nil {
			s.logger.Debug().Str("provider_ticker", raw.Ticker).Msg("Unresolved fundamentals record skipped")
			continue
		}
		applyRawCompany(company, &raw)
		applyDerived(company)
	}
	return nil
}

// applyRawCompany overlays provided fields onto a tracked company. Absent
// fields (empty strings, nil pointers) never clobber existing data.
func applyRawCompany(company *models.Company, raw *models.RawCompany) {
	if raw.Price != nil && *raw.Price > 0 {
		company.Price = *raw.Price
	}
	if raw.Change != nil {
		company.Change = *raw.Change
	}
	if raw.SharesOutstanding != nil && *raw.SharesOutstanding > 0 {
		company.SharesOutstanding = *raw.SharesOutstanding
	}
	if raw.NetDebt != "" {
		company.NetDebt = raw.NetDebt
	}
	if raw.DividendYield != "" {
		company.DividendYield = raw.DividendYield
	}
	if raw.Rating != "" {
		company.Rating = parseRating(raw.Rating)
	}
	if raw.TargetPrice != nil && *raw.TargetPrice > 0 {
		tp := *raw.TargetPrice
		company.TargetPrice = &tp
	}

	for _, year := range models.TrackedYears() {
		incoming := raw.Figures(year)
		current := company.Figures(year)
		overlayFigures(&current, incoming)
		company.SetFigures(year, current)
	}
}

func overlayFigures(current *models.YearFigures, incoming models.YearFigures) {
	if incoming.Revenue != "" {
		current.Revenue = incoming.Revenue
	}
	if incoming.EBITDA != "" {
		current.EBITDA = incoming.EBITDA
	}
	if incoming.EBIT != "" {
		current.EBIT = incoming.EBIT
	}
	if incoming.NetIncome != "" {
		current.NetIncome = incoming.NetIncome
	}
	if incoming.Capex != "" {
		current.Capex = incoming.Capex
	}
	if incoming.FCF != "" {
		current.FCF = incoming.FCF
	}
	if incoming.DividendPerShare != "" {
		current.DividendPerShare = incoming.DividendPerShare
	}
}

func parseRating(raw string) models.AnalystRating {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "strong buy":
		return models.RatingStrongBuy
	case "buy", "outperform", "overweight":
		return models.RatingBuy
	case "hold", "neutral":
		return models.RatingHold
	case "sell", "underperform", "underweight":
		return models.RatingSell
	}
	return models.RatingNA
}

func (s *Service) mergeRatings(snapshot *models.Snapshot, category models.Category, text string) error {
	var payload struct {
		Companies []ratingRecord `json:"companies"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("%s payload: %w", category, err)
	}

	for _, record := range payload.Companies {
		company := resolveCompany(snapshot, record.Ticker)
		if company == nil {
			continue
		}
		if record.Rating != "" {
			if rating := parseRating(record.Rating); rating != models.RatingNA {
				company.Rating = rating
			}
		}
		if record.TargetPrice != nil && *record.TargetPrice > 0 {
			tp := *record.TargetPrice
			company.TargetPrice = &tp
		}
	}
	return nil
}

func (s *Service) mergeNews(snapshot *models.Snapshot, text string) error {
	var payload struct {
		News []models.NewsItem `json:"news"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("news payload: %w", err)
	}
	if len(payload.News) == 0 {
		return fmt.Errorf("news payload empty")
	}

	snapshot.News = backfillNewsIDs(payload.News)
	return nil
}

func (s *Service) mergeHighlights(snapshot *models.Snapshot, text string) error {
	var payload struct {
		Highlights []models.NewsItem `json:"highlights"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("highlights payload: %w", err)
	}
	if len(payload.Highlights) == 0 {
		return fmt.Errorf("highlights payload empty")
	}

	snapshot.Highlights = backfillNewsIDs(payload.Highlights)
	return nil
}

func backfillNewsIDs(items []models.NewsItem) []models.NewsItem {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	return items
}

func (s *Service) mergeSentiment(snapshot *models.Snapshot, text string) error {
	var payload sentimentPayload
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("sentiment payload: %w", err)
	}
	if payload.Label == "" {
		return fmt.Errorf("sentiment payload missing label")
	}

	snapshot.Sentiment = &models.SentimentSummary{
		Label:        strings.ToLower(payload.Label),
		Description:  payload.Description,
		KeyTakeaways: payload.KeyTakeaways,
		GeneratedAt:  s.now(),
	}
	if payload.Analysis != "" {
		snapshot.Analysis = payload.Analysis
	}
	if len(payload.Opportunities) > 0 {
		snapshot.MarketOpportunities = payload.Opportunities
	}
	if len(payload.Risks) > 0 {
		snapshot.MarketRisks = payload.Risks
	}
	return nil
}

func (s *Service) mergeDocuments(snapshot *models.Snapshot, text string) error {
	var payload struct {
		Documents []documentsRecord `json:"documents"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("documents payload: %w", err)
	}

	docs := make(map[string][]models.DocumentItem, len(payload.Documents))
	for _, record := range payload.Documents {
		ticker, ok := common.MatchTicker(record.Ticker, snapshot.Tickers())
		if !ok {
			continue
		}
		items := record.Items
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
		}
		docs[strings.ToUpper(ticker)] = items
	}
	if len(docs) == 0 {
		return fmt.Errorf("documents payload resolved no tracked company")
	}

	snapshot.Documents = docs
	return nil
}

func (s *Service) mergeCalendar(snapshot *models.Snapshot, text string) error {
	var payload struct {
		Events []models.EventItem `json:"events"`
	}
	if err := common.DecodeLoose(text, &payload); err != nil {
		return fmt.Errorf("calendar payload: %w", err)
	}
	if len(payload.Events) == 0 {
		return fmt.Errorf("calendar payload empty")
	}

	for i := range payload.Events {
		if payload.Events[i].ID == "" {
			payload.Events[i].ID = uuid.NewString()
		}
	}
	snapshot.Events = payload.Events
	return nil
}
