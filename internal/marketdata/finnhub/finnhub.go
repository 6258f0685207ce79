// Package finnhub is the live market data provider client. It maps the
// provider's parallel OHLCV arrays into candle bars and its quote payload
// into a snapshot. Errors here stay local: the gateway above owns the
// fallback policy.
package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"wealth-dashboard/internal/api"
	"wealth-dashboard/internal/types"
)

const daySeconds = 24 * 60 * 60

type Client struct {
	api    *api.Client
	apiKey string
	// Trailing window sizes in days, by resolution.
	dailyWindow    int
	intradayWindow int
}

type Params struct {
	BaseURL            string
	APIKey             string
	DailyWindowDays    int
	IntradayWindowDays int
}

func NewClient(p Params) *Client {
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(15*time.Second),
			api.WithLogging(true),
		),
		apiKey:         p.APIKey,
		dailyWindow:    p.DailyWindowDays,
		intradayWindow: p.IntradayWindowDays,
	}
}

// candleResponse is the provider's parallel-array candle payload.
type candleResponse struct {
	Close  []float64 `json:"c"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Open   []float64 `json:"o"`
	Status string    `json:"s"`
	Time   []int64   `json:"t"`
	Volume []int64   `json:"v"`
}

// quoteResponse is the provider's quote payload.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
}

// Candles fetches a fixed trailing window of bars ending now: the daily
// window for resolution "D", the intraday window otherwise. Provider
// order (chronological ascending) is preserved.
func (c *Client) Candles(ctx context.Context, symbol, resolution string) ([]types.Candle, error) {
	to := time.Now().Unix()
	days := c.intradayWindow
	if resolution == "D" {
		days = c.dailyWindow
	}
	from := to - int64(days)*daySeconds

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", resolution)
	q.Set("from", fmt.Sprintf("%d", from))
	q.Set("to", fmt.Sprintf("%d", to))
	q.Set("token", c.apiKey)

	var resp candleResponse
	if err := c.api.GetJSON(ctx, "/stock/candle?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("provider returned status %q for %s", resp.Status, symbol)
	}
	return zipCandles(resp)
}

// zipCandles combines the parallel time/open/high/low/close/volume arrays
// into one ordered sequence, one bar per index.
func zipCandles(resp candleResponse) ([]types.Candle, error) {
	n := len(resp.Time)
	if len(resp.Open) != n || len(resp.High) != n || len(resp.Low) != n ||
		len(resp.Close) != n || len(resp.Volume) != n {
		return nil, fmt.Errorf("mismatched candle arrays: t=%d o=%d h=%d l=%d c=%d v=%d",
			n, len(resp.Open), len(resp.High), len(resp.Low), len(resp.Close), len(resp.Volume))
	}

	candles := make([]types.Candle, 0, n)
	for i := 0; i < n; i++ {
		candles = append(candles, types.Candle{
			Date:   time.Unix(resp.Time[i], 0).UTC().Format("2006-01-02"),
			Open:   resp.Open[i],
			High:   resp.High[i],
			Low:    resp.Low[i],
			Close:  resp.Close[i],
			Volume: resp.Volume[i],
		})
	}
	return candles, nil
}

// Quote fetches the current price snapshot for a symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.apiKey)

	var resp quoteResponse
	if err := c.api.GetJSON(ctx, "/quote?"+q.Encode(), &resp); err != nil {
		return types.Quote{}, err
	}

	return types.Quote{
		Symbol:        symbol,
		Price:         resp.Current,
		Change:        resp.Change,
		PercentChange: resp.PercentChange,
		High:          resp.High,
		Low:           resp.Low,
		Open:          resp.Open,
		PrevClose:     resp.PrevClose,
	}, nil
}
