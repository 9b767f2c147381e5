package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"wealth/internal/core"
	"wealth/internal/log"
	"wealth/internal/market"
)

const (
	msgUpstreamError  = "Yahoo Finance API error"
	msgSymbolNotFound = "Symbol not found"
)

// marketErrorText is the client-facing text for a gateway error.
func marketErrorText(err error) string {
	switch {
	case errors.Is(err, market.ErrUpstreamUnreachable):
		return msgUpstreamError
	case errors.Is(err, market.ErrSymbolNotFound):
		return msgSymbolNotFound
	default:
		return err.Error()
	}
}

// respondMarketError maps gateway errors; fallback is the message for
// anything that is neither an upstream outage nor an unknown symbol.
func respondMarketError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, market.ErrUpstreamUnreachable):
		writeError(w, http.StatusBadGateway, msgUpstreamError)
	case errors.Is(err, market.ErrSymbolNotFound):
		writeError(w, http.StatusNotFound, msgSymbolNotFound)
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
	log.FromContext(r.Context()).WarnContext(r.Context(), "Market data request failed",
		log.FieldPath, r.URL.Path, log.FieldErrorType, log.ErrorTypeUpstream, log.FieldError, err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusOK, []market.SearchResult{})
		return
	}
	results, err := s.market.Search(r.Context(), q)
	if err != nil {
		respondMarketError(w, r, err, "Failed to search symbol")
		return
	}
	if results == nil {
		results = []market.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.market.Quote(r.Context(), r.PathValue("symbol"))
	if err != nil {
		respondMarketError(w, r, err, "Failed to get quote")
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleHistorical(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period1, err1 := strconv.ParseInt(q.Get("period1"), 10, 64)
	period2, err2 := strconv.ParseInt(q.Get("period2"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "period1 and period2 must be unix timestamps")
		return
	}
	interval := q.Get("interval")
	if interval == "" {
		interval = "1d"
	}

	data, err := s.market.Historical(r.Context(), r.PathValue("symbol"), period1, period2, interval)
	if err != nil {
		respondMarketError(w, r, err, "Failed to get historical data")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleMetalPrice(m core.Metal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		price, err := s.metals.Price(r.Context(), m)
		if err != nil {
			msg := fmt.Sprintf("Failed to fetch %s price", m)
			var mpe *market.MetalPriceError
			if errors.As(err, &mpe) {
				msg = fmt.Sprintf("Failed to fetch %s price: %s", m, marketErrorText(mpe.Err))
			}
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Metal price failed",
				"metal", m, log.FieldErrorType, log.ErrorTypeUpstream, log.FieldError, err)
			writeError(w, http.StatusInternalServerError, msg)
			return
		}
		writeJSON(w, http.StatusOK, price)
	}
}
