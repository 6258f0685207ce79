package marketobs

import (
	"context"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"
)

// observableMarketData wraps a MarketData with observability (logging & tracing)
type observableMarketData struct {
	md interfaces.MarketData
}

// Compile-time interface check
var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap wraps a market data source with observability middleware
func Wrap(md interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{md: md}
}

func (om *observableMarketData) Candles(ctx context.Context, symbol, resolution string, mode types.MarketMode) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Candles")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching candles",
		"symbol", symbol,
		"resolution", resolution,
		"mode", mode,
	)

	candles, err := om.md.Candles(ctx, symbol, resolution, mode)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Candle fetch failed", err, "symbol", symbol)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched", "symbol", symbol, "bars", len(candles))
	return candles, nil
}

func (om *observableMarketData) Quote(ctx context.Context, symbol string, mode types.MarketMode) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Quote")
	defer span.End()

	quote, err := om.md.Quote(ctx, symbol, mode)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Quote fetch failed", err, "symbol", symbol)
		return types.Quote{}, err
	}

	logger.DebugSkip(ctx, 1, "Quote fetched",
		"symbol", symbol,
		"price", quote.Price,
		"percentChange", quote.PercentChange,
	)
	return quote, nil
}
