package server

import (
	"net/http"
	"strings"

	"github.com/bruno248/ooh-terminal/internal/models"
)

// handleHealth responds to GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSnapshot responds to GET /api/snapshot with the full state.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.sync.Snapshot())
}

// handleFreshness responds to GET /api/freshness with humanized ages and
// the per-category loading flags.
func (s *Server) handleFreshness(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ages":    s.sync.FreshnessAges(),
		"loading": s.sync.Loading(),
	})
}

// handleHistory responds to GET /api/history?period=1M&tickers=A,B.
// Without tickers, all tracked companies are covered.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period := models.HistoryPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = models.Period1M
	}
	if !period.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown period: "+string(period))
		return
	}

	var tickers []string
	if raw := r.URL.Query().Get("tickers"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
	}
	if len(tickers) == 0 {
		tickers = s.sync.Snapshot().Tickers()
	}

	prices, err := s.history.GetOrFetch(r.Context(), period, tickers)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, prices)
}

// handleRefresh responds to POST /api/refresh/{category}[?tickers=A,B].
// Without tickers the whole tracked set refreshes.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	category := models.Category(PathParam(r, "/api/refresh/"))
	if !category.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown category: "+string(category))
		return
	}

	var tickers []string
	if raw := r.URL.Query().Get("tickers"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
	}

	if err := s.sync.Refresh(r.Context(), category, tickers...); err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"ages":     s.sync.FreshnessAges(),
	})
}

// handleCompanies responds to GET /api/companies (list) and
// POST /api/companies (track a new ticker).
func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, s.sync.Snapshot().Companies)
	case http.MethodPost:
		var body struct {
			Ticker string `json:"ticker"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}
		if strings.TrimSpace(body.Ticker) == "" {
			WriteError(w, http.StatusBadRequest, "ticker is required")
			return
		}

		company, err := s.sync.AddCompany(r.Context(), body.Ticker)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, company)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleCompanyByTicker responds to GET/DELETE /api/companies/{ticker} and
// GET /api/companies/{ticker}/summary.
func (s *Server) handleCompanyByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := PathParam(r, "/api/companies/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	if rest, ok := strings.CutSuffix(ticker, "/summary"); ok {
		s.handleCompanySummary(w, r, rest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		company := s.sync.Snapshot().FindCompany(strings.ToUpper(ticker))
		if company == nil {
			WriteError(w, http.StatusNotFound, "Company not tracked: "+ticker)
			return
		}
		WriteJSON(w, http.StatusOK, company)
	case http.MethodDelete:
		if err := s.sync.RemoveCompany(r.Context(), ticker); err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"removed": strings.ToUpper(ticker)})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleCompanySummary responds to GET /api/companies/{ticker}/summary with
// a free-text provider briefing.
func (s *Server) handleCompanySummary(w http.ResponseWriter, r *http.Request, ticker string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.sync.CompanySummary(r.Context(), ticker)
	if err != nil {
		if s.sync.Snapshot().FindCompany(strings.ToUpper(ticker)) == nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"ticker":  strings.ToUpper(ticker),
		"summary": summary,
	})
}

// handleNews responds to GET /api/news.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.sync.Snapshot().News)
}

// handleHighlights responds to GET /api/highlights.
func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.sync.Snapshot().Highlights)
}

// handleEvents responds to GET /api/events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.sync.Snapshot().Events)
}

// handleDocuments responds to GET /api/documents[?ticker=X].
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	documents := s.sync.Snapshot().Documents
	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		WriteJSON(w, http.StatusOK, documents[strings.ToUpper(ticker)])
		return
	}
	WriteJSON(w, http.StatusOK, documents)
}

// handleSentiment responds to GET /api/sentiment with the sector read.
func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot := s.sync.Snapshot()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sentiment":     snapshot.Sentiment,
		"analysis":      snapshot.Analysis,
		"opportunities": snapshot.MarketOpportunities,
		"risks":         snapshot.MarketRisks,
	})
}
