// Package gateway implements the hybrid market data policy: live
// provider data when a credential is configured and the call succeeds,
// synthetic data otherwise. Availability beats accuracy here: callers
// always receive displayable data and never see an upstream error.
package gateway

import (
	"context"
	"time"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/marketdata/finnhub"
	"wealth-dashboard/internal/marketdata/synthetic"
	"wealth-dashboard/internal/store"
	"wealth-dashboard/internal/types"
)

// degradedQuotePrice is the static price served when the live quote call
// fails; every other field collapses to the same level.
const degradedQuotePrice = 150.0

// liveProvider is what the gateway needs from the upstream client.
type liveProvider interface {
	Candles(ctx context.Context, symbol, resolution string) ([]types.Candle, error)
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}

type Gateway struct {
	hasCredential bool
	live          liveProvider
	syn           *synthetic.Generator
}

var _ interfaces.MarketData = (*Gateway)(nil)

func New(cfg *store.Config) *Gateway {
	g := &Gateway{
		syn: synthetic.New(time.Duration(cfg.Market.SimLatencyMS) * time.Millisecond),
	}
	if key := cfg.MarketAPIKey(); key != "" {
		g.hasCredential = true
		g.live = finnhub.NewClient(finnhub.Params{
			BaseURL:            cfg.Market.BaseURL,
			APIKey:             key,
			DailyWindowDays:    cfg.Market.DailyWindowDays,
			IntradayWindowDays: cfg.Market.IntradayWindowDays,
		})
	}
	return g
}

// newWith injects a provider and generator directly; used by tests.
func newWith(live liveProvider, syn *synthetic.Generator) *Gateway {
	return &Gateway{hasCredential: live != nil, live: live, syn: syn}
}

// Candles serves bars for the symbol. The selection policy runs per call:
// SIMULATED mode or a missing credential produces synthetic data with no
// network access; a failed live call silently substitutes synthetic data.
func (g *Gateway) Candles(ctx context.Context, symbol, resolution string, mode types.MarketMode) ([]types.Candle, error) {
	if mode == types.ModeSimulated || !g.hasCredential {
		return g.syn.Candles(ctx, syntheticDays(resolution))
	}

	candles, err := g.live.Candles(ctx, symbol, resolution)
	if err != nil {
		logger.Warn(ctx, "Live candle fetch failed, serving synthetic data",
			"symbol", symbol, "resolution", resolution, "error", err)
		return g.syn.Candles(ctx, synthetic.DefaultDays)
	}
	return candles, nil
}

// Quote serves the current snapshot for the symbol, degrading to a
// synthetic quote in simulated mode and to a flat static quote when the
// live call fails.
func (g *Gateway) Quote(ctx context.Context, symbol string, mode types.MarketMode) (types.Quote, error) {
	if mode == types.ModeSimulated || !g.hasCredential {
		return g.syn.Quote(ctx, symbol)
	}

	quote, err := g.live.Quote(ctx, symbol)
	if err != nil {
		logger.Warn(ctx, "Live quote fetch failed, serving degraded quote",
			"symbol", symbol, "error", err)
		return types.Quote{
			Symbol:    symbol,
			Price:     degradedQuotePrice,
			High:      degradedQuotePrice,
			Low:       degradedQuotePrice,
			Open:      degradedQuotePrice,
			PrevClose: degradedQuotePrice,
		}, nil
	}
	return quote, nil
}

// syntheticDays mirrors the live trailing windows at a smaller scale:
// daily resolution gets the longer synthetic history.
func syntheticDays(resolution string) int {
	if resolution == "D" {
		return 60
	}
	return 30
}
