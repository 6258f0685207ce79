package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wealth-dashboard/internal/dashboard"
	"wealth-dashboard/internal/engine"
	"wealth-dashboard/internal/insight/canned"
	"wealth-dashboard/internal/kvstore"
	"wealth-dashboard/internal/marketdata/gateway"
	"wealth-dashboard/internal/portfolio"
	"wealth-dashboard/internal/store"
	"wealth-dashboard/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv(store.MarketAPIKeyEnv, "")

	cfg := &store.Config{Mode: string(types.ModeSimulated), DefaultSymbol: "AAPL"}
	cfg.Market.DailyWindowDays = 90
	cfg.Market.IntradayWindowDays = 30

	repo := portfolio.New(kvstore.NewMemStore())
	market := gateway.New(cfg)
	settler := engine.New(repo)
	analyst := canned.NewAnalyst()
	dash := dashboard.NewService(market, repo)

	handler := NewHandler(cfg, repo, market, settler, analyst, dash)
	srv := httptest.NewServer(SetupRoutes(handler))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/health", &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body: %v", body)
	}
	if body["mode"] != string(types.ModeSimulated) {
		t.Errorf("expected SIMULATED mode without credential, got %s", body["mode"])
	}
}

func TestGetAssetsReturnsSeededPortfolio(t *testing.T) {
	srv := newTestServer(t)

	var assets []types.Asset
	if status := getJSON(t, srv.URL+"/api/v1/assets", &assets); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(assets) != 3 {
		t.Fatalf("expected 3 seeded assets, got %d", len(assets))
	}
}

func TestSaveAsset(t *testing.T) {
	srv := newTestServer(t)

	asset := types.Asset{ID: "9", Name: "Apartment", Type: types.AssetRealEstate, Value: 250000}
	var assets []types.Asset
	if status := postJSON(t, srv.URL+"/api/v1/assets", asset, &assets); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(assets) != 4 {
		t.Errorf("expected 4 assets after insert, got %d", len(assets))
	}

	if status := postJSON(t, srv.URL+"/api/v1/assets", types.Asset{Name: "no id"}, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for missing id, got %d", status)
	}
}

func TestDeleteAsset(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/assets/2", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer resp.Body.Close()

	var assets []types.Asset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(assets) != 2 {
		t.Errorf("expected 2 assets after delete, got %d", len(assets))
	}
}

func TestGetTransactions(t *testing.T) {
	srv := newTestServer(t)

	var txs []types.Transaction
	if status := getJSON(t, srv.URL+"/api/v1/transactions", &txs); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(txs) != 2 {
		t.Errorf("expected 2 seeded transactions, got %d", len(txs))
	}
}

func TestGetSummary(t *testing.T) {
	srv := newTestServer(t)

	var sum dashboard.Summary
	if status := getJSON(t, srv.URL+"/api/v1/summary", &sum); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if sum.NetWorth != 505950 || sum.Cash != 500000 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}

func TestGetCandles(t *testing.T) {
	srv := newTestServer(t)

	var candles []types.Candle
	if status := getJSON(t, srv.URL+"/api/v1/market/AAPL/candles", &candles); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(candles) == 0 {
		t.Fatal("expected candles in simulated mode")
	}
	for _, c := range candles {
		if c.Low > c.High || c.Close <= 0 {
			t.Errorf("malformed candle: %+v", c)
		}
	}
}

func TestGetSnapshot(t *testing.T) {
	srv := newTestServer(t)

	var snap types.Snapshot
	if status := getJSON(t, srv.URL+"/api/v1/market/AAPL/snapshot", &snap); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if snap.Symbol != "AAPL" || len(snap.Candles) == 0 || snap.Quote.Price <= 0 {
		t.Errorf("incomplete snapshot: symbol=%s candles=%d price=%v", snap.Symbol, len(snap.Candles), snap.Quote.Price)
	}
}

func TestGetInsight(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/api/v1/market/AAPL/insight", &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["insight"] == "" {
		t.Error("expected non-empty insight text")
	}
}

func TestInvalidModeRejected(t *testing.T) {
	srv := newTestServer(t)

	if status := getJSON(t, srv.URL+"/api/v1/market/AAPL/quote?mode=TURBO", nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid mode, got %d", status)
	}
}

func TestPlaceTrade(t *testing.T) {
	srv := newTestServer(t)

	trade := map[string]any{"symbol": "AAPL", "side": "BUY", "quantity": 2}
	var settlement types.Settlement
	if status := postJSON(t, srv.URL+"/api/v1/trades", trade, &settlement); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if settlement.Transaction.Symbol != "AAPL" || settlement.Transaction.Quantity != 2 {
		t.Errorf("unexpected settlement transaction: %+v", settlement.Transaction)
	}

	// transaction history grows
	var txs []types.Transaction
	getJSON(t, srv.URL+"/api/v1/transactions", &txs)
	if len(txs) != 3 {
		t.Errorf("expected 3 transactions after trade, got %d", len(txs))
	}
}

func TestPlaceTradeInsufficientFunds(t *testing.T) {
	srv := newTestServer(t)

	// synthetic quotes stay under 150, so this total far exceeds the cash
	trade := map[string]any{"symbol": "AAPL", "side": "BUY", "quantity": 1000000}
	var body map[string]string
	if status := postJSON(t, srv.URL+"/api/v1/trades", trade, &body); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestPlaceTradeBadInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []map[string]any{
		{"symbol": "AAPL", "side": "BUY", "quantity": 0},
		{"symbol": "AAPL", "side": "HOLD", "quantity": 1},
		{"side": "BUY", "quantity": 1},
	}
	for i, trade := range cases {
		if status := postJSON(t, srv.URL+"/api/v1/trades", trade, nil); status != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, status)
		}
	}
}

func TestTradePersistsAcrossRequests(t *testing.T) {
	srv := newTestServer(t)

	trade := map[string]any{"symbol": "AAPL", "side": "SELL", "quantity": 5}
	var settlement types.Settlement
	if status := postJSON(t, srv.URL+"/api/v1/trades", trade, &settlement); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	var assets []types.Asset
	getJSON(t, srv.URL+"/api/v1/assets", &assets)
	for _, a := range assets {
		if a.IsStockFor("AAPL") && a.Quantity != 5 {
			t.Errorf("expected 5 AAPL shares after selling 5 of 10, got %d", a.Quantity)
		}
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)

	if status := getJSON(t, fmt.Sprintf("%s/api/v1/nope", srv.URL), nil); status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}
