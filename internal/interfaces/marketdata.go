package interfaces

import (
	"context"

	"wealth-dashboard/internal/types"
)

// MarketData serves candle history and live quotes for a symbol. The mode
// is evaluated per call, not cached: SIMULATED always produces synthetic
// data with no network access, and LIVE silently degrades to synthetic
// data when the upstream provider is unavailable. Implementations never
// return upstream errors to the caller.
type MarketData interface {
	Candles(ctx context.Context, symbol, resolution string, mode types.MarketMode) ([]types.Candle, error)
	Quote(ctx context.Context, symbol string, mode types.MarketMode) (types.Quote, error)
}
