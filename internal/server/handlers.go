// Package server exposes the dashboard over a JSON HTTP API. Handlers
// stay thin: parse the request, call the owning service, write JSON.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wealth-dashboard/internal/dashboard"
	"wealth-dashboard/internal/engine"
	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/store"
	"wealth-dashboard/internal/types"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	cfg       *store.Config
	portfolio interfaces.Portfolio
	market    interfaces.MarketData
	settler   interfaces.Settler
	analyst   interfaces.Analyst
	dash      *dashboard.Service
}

// NewHandler creates a new Handler
func NewHandler(cfg *store.Config, p interfaces.Portfolio, m interfaces.MarketData, s interfaces.Settler, a interfaces.Analyst, d *dashboard.Service) *Handler {
	return &Handler{
		cfg:       cfg,
		portfolio: p,
		market:    m,
		settler:   s,
		analyst:   a,
		dash:      d,
	}
}

// mode resolves the market mode for a request: an explicit ?mode= query
// wins, otherwise the configured mode with the credential rule applied.
// A LIVE override without a credential still degrades inside the gateway.
func (h *Handler) mode(r *http.Request) (types.MarketMode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return h.cfg.EffectiveMode(), nil
	}
	switch types.MarketMode(strings.ToUpper(raw)) {
	case types.ModeSimulated:
		return types.ModeSimulated, nil
	case types.ModeLive:
		return types.ModeLive, nil
	}
	return "", errors.New("mode must be SIMULATED or LIVE")
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"mode":   string(h.cfg.EffectiveMode()),
	})
}

// GetAssets handles GET /assets
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.portfolio.Assets()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// SaveAsset handles POST /assets, upserting by ID
func (h *Handler) SaveAsset(w http.ResponseWriter, r *http.Request) {
	var asset types.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		respondError(w, r, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if asset.ID == "" || asset.Name == "" {
		respondError(w, r, http.StatusBadRequest, errors.New("id and name are required"))
		return
	}

	assets, err := h.portfolio.SaveAsset(asset)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// DeleteAsset handles DELETE /assets/{id}
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	assets, err := h.portfolio.DeleteAsset(id)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// GetTransactions handles GET /transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.portfolio.Transactions()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

// GetSummary handles GET /summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.dash.Summary(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// GetCandles handles GET /market/{symbol}/candles
func (h *Handler) GetCandles(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	mode, err := h.mode(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	candles, err := h.market.Candles(r.Context(), symbol, h.resolution(r), mode)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, candles)
}

// GetQuote handles GET /market/{symbol}/quote
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	mode, err := h.mode(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	quote, err := h.market.Quote(r.Context(), symbol, mode)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// GetSnapshot handles GET /market/{symbol}/snapshot. A refresh that was
// superseded by a newer one still returns its own consistent result.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	mode, err := h.mode(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	snap, err := h.dash.Refresh(r.Context(), symbol, h.resolution(r), mode)
	if err != nil && !errors.Is(err, dashboard.ErrStaleRefresh) {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// GetInsight handles GET /market/{symbol}/insight
func (h *Handler) GetInsight(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	mode, err := h.mode(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	quote, err := h.market.Quote(r.Context(), symbol, mode)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	candles, err := h.market.Candles(r.Context(), symbol, h.resolution(r), mode)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}

	text, err := h.analyst.Explain(r.Context(), symbol, quote, candles)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"symbol": symbol, "insight": text})
}

// PlaceTrade handles POST /trades. The trade settles against a quote
// fetched at request time.
func (h *Handler) PlaceTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol   string          `json:"symbol"`
		Side     types.TradeSide `json:"side"`
		Quantity int             `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Symbol == "" {
		respondError(w, r, http.StatusBadRequest, errors.New("symbol is required"))
		return
	}

	mode, err := h.mode(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	quote, err := h.market.Quote(r.Context(), req.Symbol, mode)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}

	settlement, err := h.settler.Settle(r.Context(), req.Side, req.Symbol, req.Quantity, quote.Price)
	switch {
	case errors.Is(err, engine.ErrInsufficientFunds):
		respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, engine.ErrInvalidQuantity), errors.Is(err, engine.ErrUnknownSide):
		respondError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusCreated, settlement)
}

func (h *Handler) resolution(r *http.Request) string {
	if res := r.URL.Query().Get("resolution"); res != "" {
		return res
	}
	return "D"
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
