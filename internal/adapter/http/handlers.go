package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gridsight/outage-analytics/internal/analytics"
	"github.com/gridsight/outage-analytics/internal/export"
)

// defaultSimilarLimit caps /similar results unless the caller asks for more.
const defaultSimilarLimit = 3

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary := analytics.Summarize(s.history.Snapshot())
	if summary == nil {
		writeError(w, http.StatusNotFound, "no outage history available")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleScorecards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Scorecards(s.history.Snapshot()))
}

func (s *Server) handleScorecardsCSV(w http.ResponseWriter, _ *http.Request) {
	cards := analytics.Scorecards(s.history.Snapshot())
	writeCSV(w, "neighborhood-scorecards.csv", export.ScorecardCSV(cards))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	writeCSV(w, "outage-history.csv", export.HistoryCSV(s.history.Snapshot(), zip))
}

func (s *Server) handleAreaTrends(w http.ResponseWriter, r *http.Request) {
	zip := r.PathValue("zip")
	writeJSON(w, http.StatusOK, analytics.NeighborhoodTrends(zip, s.history.Snapshot()))
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	customers, err := strconv.Atoi(q.Get("customers"))
	if err != nil || customers < 0 {
		writeError(w, http.StatusBadRequest, "customers must be a non-negative integer")
		return
	}
	hours, err := strconv.ParseFloat(q.Get("hours"), 64)
	if err != nil || hours < 0 {
		writeError(w, http.StatusBadRequest, "hours must be a non-negative number")
		return
	}

	var industries []string
	if raw := q.Get("industries"); raw != "" {
		industries = strings.Split(raw, ",")
	}

	impact := analytics.Impact(customers, hours, industries)
	writeJSON(w, http.StatusOK, struct {
		analytics.ImpactResult
		Summary string `json:"summary"`
	}{impact, analytics.ImpactSummary(impact)})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	limit := defaultSimilarLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	snapshot := s.history.Snapshot()
	for _, rec := range snapshot {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, analytics.FindSimilarOutages(rec, snapshot, limit))
			return
		}
	}
	writeError(w, http.StatusNotFound, "outage not found")
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body)) //nolint:errcheck // best-effort response
}
