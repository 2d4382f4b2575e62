package handlers

import (
	"net/http"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/marketdata"
)

// SymbolsHandler resolves stock symbol lookups for the related-stock
// fields, and triggers indicator refreshes.
type SymbolsHandler struct {
	market *marketdata.Service
	logger *common.Logger
}

func NewSymbolsHandler(market *marketdata.Service, logger *common.Logger) *SymbolsHandler {
	return &SymbolsHandler{market: market, logger: logger}
}

// Lookup handles GET /api/symbols?q=.
func (h *SymbolsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.market.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("symbol lookup failed")
		WriteError(w, http.StatusBadGateway, "symbol lookup failed")
		return
	}
	if symbols == nil {
		symbols = []marketdata.Symbol{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"symbols": symbols})
}

// Refresh handles POST /api/marketdata/refresh.
func (h *SymbolsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.market.Refresh(r.Context()); err != nil {
		WriteError(w, http.StatusBadGateway, "market data refresh failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
