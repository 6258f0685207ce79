package interfaces

import (
	"context"

	"wealth-dashboard/internal/types"
)

// Settler applies a simulated trade against the portfolio. The caller
// must have obtained a quote for the symbol beforehand; the settler never
// fetches one. A BUY that the cash balance cannot cover fails without
// touching any state.
type Settler interface {
	Settle(ctx context.Context, side types.TradeSide, symbol string, qty int, quotePrice float64) (types.Settlement, error)
}
