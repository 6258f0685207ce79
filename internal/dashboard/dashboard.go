// Package dashboard assembles the data a dashboard view needs: a market
// snapshot (candles plus quote, fetched concurrently) and a portfolio
// summary. Snapshot refreshes carry a monotonic token so a slow refresh
// can never overwrite the result of a newer one.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/types"
)

// ErrStaleRefresh indicates a refresh completed after a newer one had
// already been committed. Its result was discarded.
var ErrStaleRefresh = errors.New("refresh superseded by a newer request")

// Summary is the portfolio roll-up shown in the dashboard header
type Summary struct {
	NetWorth float64                     `json:"netWorth"`
	Cash     float64                     `json:"cash"`
	Invested float64                     `json:"invested"`
	ByType   map[types.AssetType]float64 `json:"byType"`
}

// Service coordinates market refreshes and portfolio summaries
type Service struct {
	market    interfaces.MarketData
	portfolio interfaces.Portfolio

	nextToken atomic.Uint64

	mu      sync.Mutex
	current types.Snapshot
}

func NewService(market interfaces.MarketData, portfolio interfaces.Portfolio) *Service {
	return &Service{market: market, portfolio: portfolio}
}

// Refresh fetches candles and quote for the symbol in parallel and
// commits the combined snapshot. Either fetch failing fails the whole
// refresh; the previously committed snapshot stays in place. If a newer
// refresh committed first, the result is returned with ErrStaleRefresh
// and the committed snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context, symbol, resolution string, mode types.MarketMode) (types.Snapshot, error) {
	token := s.nextToken.Add(1)

	var (
		candles []types.Candle
		quote   types.Quote
		cErr    error
		qErr    error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		candles, cErr = s.market.Candles(ctx, symbol, resolution, mode)
	}()
	go func() {
		defer wg.Done()
		quote, qErr = s.market.Quote(ctx, symbol, mode)
	}()
	wg.Wait()

	if cErr != nil {
		return types.Snapshot{}, fmt.Errorf("failed to fetch candles: %w", cErr)
	}
	if qErr != nil {
		return types.Snapshot{}, fmt.Errorf("failed to fetch quote: %w", qErr)
	}

	snap := types.Snapshot{
		Symbol:  symbol,
		Candles: candles,
		Quote:   quote,
		Token:   token,
	}

	if !s.commit(snap) {
		logger.Debug(ctx, "Discarded stale refresh", "symbol", symbol, "token", token)
		return snap, ErrStaleRefresh
	}

	logger.Debug(ctx, "Committed refresh", "symbol", symbol, "token", token, "candles", len(candles))
	return snap, nil
}

// commit installs the snapshot unless a newer one already landed
func (s *Service) commit(snap types.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Token <= s.current.Token {
		return false
	}
	s.current = snap
	return true
}

// Latest returns the most recently committed snapshot, if any
func (s *Service) Latest() (types.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current.Token > 0
}

// Summary computes the portfolio roll-up from the stored assets
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	assets, err := s.portfolio.Assets()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load assets: %w", err)
	}

	sum := Summary{ByType: make(map[types.AssetType]float64)}
	for _, a := range assets {
		sum.NetWorth += a.Value
		sum.ByType[a.Type] += a.Value
		if a.IsCash() {
			sum.Cash += a.Value
		} else {
			sum.Invested += a.Value
		}
	}
	return sum, nil
}
