package insightobs

import (
	"context"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"
)

// observableAnalyst wraps an Analyst with observability (logging & tracing)
type observableAnalyst struct {
	analyst interfaces.Analyst
}

// Compile-time interface check
var _ interfaces.Analyst = (*observableAnalyst)(nil)

// Wrap wraps an analyst with observability middleware
func Wrap(analyst interfaces.Analyst) interfaces.Analyst {
	return &observableAnalyst{analyst: analyst}
}

func (oa *observableAnalyst) Explain(ctx context.Context, symbol string, quote types.Quote, candles []types.Candle) (string, error) {
	ctx, span := trace.StartSpan(ctx, "insight.Explain")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting market commentary",
		"symbol", symbol,
		"price", quote.Price,
	)

	text, err := oa.analyst.Explain(ctx, symbol, quote, candles)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Commentary request failed", err, "symbol", symbol)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Commentary received", "symbol", symbol, "chars", len(text))
	return text, nil
}
