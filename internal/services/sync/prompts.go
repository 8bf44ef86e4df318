package sync

import (
	"fmt"
	"strings"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// Prompt builders per refresh category. The wording is opaque request
// content; the JSON shape embedded in each prompt is the contract the merge
// step decodes defensively.

func buildPrompt(category models.Category, tickers []string) string {
	list := strings.Join(tickers, ", ")

	switch category {
	case models.CategoryQuotes:
		return fmt.Sprintf(`Provide the latest share price and daily change percentage for these out-of-home advertising companies: %s.

Respond with JSON only:
{"companies":[{"ticker":"...","price":0.0,"change":0.0}]}

Use the ticker symbols exactly as given. price is the last close in local currency, change is the daily move in percent.`, list)

	case models.CategoryFundamentals:
		return buildFundamentalsPrompt(tickers)

	case models.CategoryRatings:
		return fmt.Sprintf(`Provide the current analyst consensus rating for each of these companies: %s.

Respond with JSON only:
{"companies":[{"ticker":"...","rating":"Buy|Strong Buy|Hold|Sell"}]}`, list)

	case models.CategoryTargets:
		return fmt.Sprintf(`Provide the current analyst consensus 12-month price target for each of these companies: %s.

Respond with JSON only:
{"companies":[{"ticker":"...","targetPrice":0.0}]}

targetPrice is in the company's local trading currency.`, list)

	case models.CategoryNews:
		return fmt.Sprintf(`Find the most recent news (last 7 days) about the out-of-home and digital-out-of-home advertising sector, including these companies: %s.

Respond with JSON only:
{"news":[{"source":"...","title":"...","date":"YYYY-MM-DD","tag":"Market|Corporate|Earnings|Deals|Digital|Regulation","url":"...","ticker":"...","region":"..."}]}

Return 8 to 12 items, most recent first. ticker may be empty for sector-wide items.`, list)

	case models.CategoryHighlights:
		return fmt.Sprintf(`Pick the 3 most market-moving recent headlines for these out-of-home advertising companies: %s.

Respond with JSON only:
{"highlights":[{"source":"...","title":"...","date":"YYYY-MM-DD","tag":"Market|Corporate|Earnings|Deals|Digital|Regulation","ticker":"..."}]}`, list)

	case models.CategorySentiment:
		return fmt.Sprintf(`Assess the current investor sentiment for the out-of-home advertising sector, considering these companies: %s.

Respond with JSON only:
{"label":"bullish|bearish|neutral|mixed","description":"...","keyTakeaways":["..."],"analysis":"...","opportunities":["..."],"risks":["..."]}

description is 2-3 sentences. analysis is a longer sector read. Give 3-5 takeaways, opportunities, and risks.`, list)

	case models.CategoryDocuments:
		return fmt.Sprintf(`List recently published investor documents (annual reports, presentations, ESG reports) for each of these companies: %s.

Respond with JSON only:
{"documents":[{"ticker":"...","items":[{"type":"PDF|PPT|ESG|Report","title":"...","date":"YYYY-MM-DD","url":"..."}]}]}`, list)

	case models.CategoryCalendar:
		return fmt.Sprintf(`List upcoming earnings dates, AGMs, and report releases for these companies: %s.

Respond with JSON only:
{"events":[{"title":"...","date":"YYYY-MM-DD","type":"Earnings|AGM|Report","ticker":"..."}]}

Only future dates, ascending.`, list)
	}

	return ""
}

func buildFundamentalsPrompt(tickers []string) string {
	return fmt.Sprintf(`Provide financial fundamentals for these out-of-home advertising companies: %s.

For each company give reported 2024 figures and 2025/2026 consensus estimates. All magnitudes are strings in millions with a unit suffix, e.g. "920 M" or "3.5 B".

Respond with JSON only:
{"companies":[{
  "ticker":"...",
  "price":0.0,
  "sharesOutstanding":0.0,
  "netDebt":"...",
  "revenue2024":"...","revenue2025":"...","revenue2026":"...",
  "ebitda2024":"...","ebitda2025":"...","ebitda2026":"...",
  "ebit2024":"...","ebit2025":"...","ebit2026":"...",
  "netIncome2024":"...","netIncome2025":"...","netIncome2026":"...",
  "capex2024":"...","capex2025":"...","capex2026":"...",
  "fcf2024":"...","fcf2025":"...","fcf2026":"...",
  "dividendPerShare2024":"...","dividendPerShare2025":"...","dividendPerShare2026":"...",
  "rating":"...","targetPrice":0.0
}]}

sharesOutstanding is in millions. Omit fields you cannot source; never invent numbers.`,
		strings.Join(tickers, ", "))
}

// buildSummaryPrompt asks for free-form text, not JSON: the answer is shown
// verbatim in the terminal's company panel.
func buildSummaryPrompt(company *models.Company) string {
	return fmt.Sprintf(`Write a concise investor briefing (4-6 sentences, plain text, no markdown) on %s (%s), an out-of-home advertising company.
Cover its market position, recent performance, and the main thing investors are watching. Current share price: %.2f %s.`,
		company.Name, company.Ticker, company.Price, company.Currency)
}
