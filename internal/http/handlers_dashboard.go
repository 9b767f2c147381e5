package http

import (
	"net/http"
	"strconv"
	"strings"

	"wealth/internal/core"
)

func (s *Server) handleDashboardOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context(), owner(r))
	if err != nil {
		respondError(w, r, err, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// handleRecentTransactions serves the merged income/expense feed. A missing
// or unparsable limit falls back to the default; the service clamps the rest.
func (s *Server) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := core.DefaultRecentLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	txs, err := s.dashboard.Recent(r.Context(), owner(r), limit)
	if err != nil {
		respondError(w, r, err, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, txs)
}
