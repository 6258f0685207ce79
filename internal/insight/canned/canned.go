// Package canned is the offline analyst used when no generative-text
// credential is configured. The commentary is a deterministic template
// over the quote; no network access happens.
package canned

import (
	"context"
	"fmt"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/types"
)

type Analyst struct{}

var _ interfaces.Analyst = (*Analyst)(nil)

func NewAnalyst() *Analyst {
	return &Analyst{}
}

func (a *Analyst) Explain(ctx context.Context, symbol string, quote types.Quote, candles []types.Candle) (string, error) {
	return fmt.Sprintf(`[Simulated analysis]
No AI credential was detected, so this commentary is template-generated.
%s is trading at %.2f and has been consolidating in a sideways range recently.
Suggestions:
1. Watch for changes in trading volume.
2. Support sits near %.2f.
3. A break above %.2f can be read as a bullish signal.
(Configure a Gemini API key to receive live AI analysis.)`,
		symbol, quote.Price, quote.Low, quote.High), nil
}
