package interfaces

import (
	"context"

	"wealth-dashboard/internal/types"
)

// Analyst turns a quote and recent candles into a short natural-language
// market commentary. One request, one response: no retries, no streaming,
// no conversation state. Implementations must always return displayable
// text, substituting a canned fallback when the service is unavailable.
type Analyst interface {
	Explain(ctx context.Context, symbol string, quote types.Quote, candles []types.Candle) (string, error)
}

// HeadlineSource provides recent news headlines for a symbol. Failures
// degrade to an empty slice; headlines only enrich the analyst prompt and
// are never required.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string, max int) []types.Headline
}
