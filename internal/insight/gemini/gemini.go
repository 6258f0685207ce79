// Package gemini requests market commentary from the Gemini API: one
// fixed-shape prompt, one completion, no retries and no chat state.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"
)

// apology is returned whenever the service fails or answers with no
// text; insight failures are never surfaced as errors.
const apology = "The AI analysis service is temporarily unavailable. Please try again later."

// promptCloses is how many trailing closing prices the prompt embeds.
const promptCloses = 5

type Analyst struct {
	client    *genai.Client
	model     string
	headlines interfaces.HeadlineSource
}

var _ interfaces.Analyst = (*Analyst)(nil)

// NewAnalyst creates the Gemini-backed analyst. The client picks up the
// GEMINI_API_KEY credential from the environment. headlines may be nil.
func NewAnalyst(ctx context.Context, model string, headlines interfaces.HeadlineSource) (*Analyst, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Analyst{client: client, model: model, headlines: headlines}, nil
}

func (a *Analyst) Explain(ctx context.Context, symbol string, quote types.Quote, candles []types.Candle) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	prompt := a.buildPrompt(ctx, symbol, quote, candles)

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		logger.Warn(ctx, "Gemini call failed, returning apology", "symbol", symbol, "error", err)
		return apology, nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logger.Warn(ctx, "Gemini returned no text", "symbol", symbol)
		return apology, nil
	}
	return text, nil
}

func (a *Analyst) buildPrompt(ctx context.Context, symbol string, quote types.Quote, candles []types.Candle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a seasoned Wall Street analyst. Give a short, sharp read on %s.\n\n", symbol)
	fmt.Fprintf(&b, "Current data:\n")
	fmt.Fprintf(&b, "- Price: %.2f\n", quote.Price)
	fmt.Fprintf(&b, "- Change: %.2f%%\n", quote.PercentChange)
	fmt.Fprintf(&b, "- Recent closing prices: %s\n", lastCloses(candles, promptCloses))

	if a.headlines != nil {
		if hs := a.headlines.Headlines(ctx, symbol, 0); len(hs) > 0 {
			fmt.Fprintf(&b, "\nRecent headlines:\n")
			for _, h := range hs {
				fmt.Fprintf(&b, "- %s (%s)\n", h.Title, h.Source)
			}
		}
	}

	fmt.Fprintf(&b, `
Provide:
1. A market sentiment summary (Bullish/Bearish/Neutral)
2. Three key observations
3. Concrete guidance for a retail investor

Answer in plain text paragraphs without Markdown formatting.
`)
	return b.String()
}

// lastCloses renders the trailing n closing prices, oldest first.
func lastCloses(candles []types.Candle, n int) string {
	if len(candles) > n {
		candles = candles[len(candles)-n:]
	}
	parts := make([]string, 0, len(candles))
	for _, c := range candles {
		parts = append(parts, fmt.Sprintf("%.2f", c.Close))
	}
	return strings.Join(parts, ", ")
}
