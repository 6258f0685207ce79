// Package synthetic generates stand-in market data: a random walk with a
// deterministic shape but non-deterministic values. It is the offline
// half of the hybrid gateway and performs no network access.
package synthetic

import (
	"context"
	"math"
	"math/rand"
	"time"

	"wealth-dashboard/internal/types"
)

// DefaultDays is the bar count produced when no window is requested.
const DefaultDays = 30

// Generator produces synthetic candles and quotes. Latency, when set,
// emulates network round-trip time so UI-state handling can be exercised
// against the synthetic path too.
type Generator struct {
	Latency time.Duration
}

func New(latency time.Duration) *Generator {
	return &Generator{Latency: latency}
}

// Candles returns days consecutive calendar-day bars ending today. Each
// close is a random walk off the previous close with volatility
// proportional to the price level (about 5% per step); open, high and low
// are derived from the close with bounded offsets that keep
// low <= open,close <= high. Prices are rounded to 2 decimal places and
// volume is uniform in [500000, 1500000).
func (g *Generator) Candles(ctx context.Context, days int) ([]types.Candle, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultDays
	}

	data := make([]types.Candle, 0, days)
	basePrice := 150.0
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		volatility := basePrice * 0.05
		change := (rand.Float64() - 0.5) * volatility
		close := basePrice + change
		open := basePrice + (rand.Float64()-0.5)*volatility*0.5
		high := math.Max(open, close) + rand.Float64()*volatility*0.2
		low := math.Min(open, close) - rand.Float64()*volatility*0.2
		volume := int64(rand.Intn(1000000)) + 500000

		data = append(data, types.Candle{
			Date:   date.Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: volume,
		})
		basePrice = close
	}
	return data, nil
}

// Quote returns a synthetic snapshot around a random price level.
func (g *Generator) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if err := g.sleep(ctx); err != nil {
		return types.Quote{}, err
	}

	price := 100 + rand.Float64()*50
	prevClose := price - (rand.Float64()*5 - 2.5)

	return types.Quote{
		Symbol:        symbol,
		Price:         round2(price),
		Change:        round2(price - prevClose),
		PercentChange: round2((price - prevClose) / prevClose * 100),
		High:          round2(price * 1.02),
		Low:           round2(price * 0.98),
		Open:          round2(prevClose * 1.01),
		PrevClose:     round2(prevClose),
	}, nil
}

// sleep emulates the fixed network latency of a real fetch while still
// honoring cancellation.
func (g *Generator) sleep(ctx context.Context) error {
	if g.Latency <= 0 {
		return nil
	}
	select {
	case <-time.After(g.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
