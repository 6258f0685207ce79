package engineobs

import (
	"context"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"
)

// observableSettler wraps a Settler with observability (logging & tracing)
type observableSettler struct {
	settler interfaces.Settler
}

// Compile-time interface check
var _ interfaces.Settler = (*observableSettler)(nil)

// Wrap wraps a settler with observability middleware
func Wrap(settler interfaces.Settler) interfaces.Settler {
	return &observableSettler{settler: settler}
}

func (os *observableSettler) Settle(ctx context.Context, side types.TradeSide, symbol string, qty int, quotePrice float64) (types.Settlement, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Settle")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Settling trade",
		"symbol", symbol,
		"side", side,
		"quantity", qty,
		"price", quotePrice,
	)

	settlement, err := os.settler.Settle(ctx, side, symbol, qty, quotePrice)
	if err != nil {
		// Insufficient funds is a user-facing outcome, not a system fault.
		logger.InfoSkip(ctx, 1, "Settlement rejected",
			"symbol", symbol,
			"side", side,
			"quantity", qty,
			"reason", err.Error(),
		)
		return types.Settlement{}, err
	}

	logger.InfoSkip(ctx, 1, "Settlement complete",
		"symbol", symbol,
		"side", side,
		"transaction_id", settlement.Transaction.ID,
		"total", settlement.Transaction.Total,
	)
	return settlement, nil
}
