package dashboard

import (
	"context"
	"errors"
	"testing"

	"wealth-dashboard/internal/kvstore"
	"wealth-dashboard/internal/portfolio"
	"wealth-dashboard/internal/types"
)

type fakeMarket struct {
	candles    []types.Candle
	quote      types.Quote
	candlesErr error
	quoteErr   error
	before     func() // runs inside Candles, before returning
}

func (f *fakeMarket) Candles(ctx context.Context, symbol, resolution string, mode types.MarketMode) ([]types.Candle, error) {
	if f.before != nil {
		f.before()
	}
	return f.candles, f.candlesErr
}

func (f *fakeMarket) Quote(ctx context.Context, symbol string, mode types.MarketMode) (types.Quote, error) {
	return f.quote, f.quoteErr
}

func TestRefreshCombinesCandlesAndQuote(t *testing.T) {
	market := &fakeMarket{
		candles: []types.Candle{{Date: "2025-01-02", Close: 150}},
		quote:   types.Quote{Symbol: "AAPL", Price: 151},
	}
	s := NewService(market, nil)

	snap, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if snap.Symbol != "AAPL" || len(snap.Candles) != 1 || snap.Quote.Price != 151 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Token == 0 {
		t.Error("expected a nonzero refresh token")
	}

	latest, ok := s.Latest()
	if !ok || latest.Token != snap.Token {
		t.Errorf("expected committed snapshot, got ok=%v token=%d", ok, latest.Token)
	}
}

func TestRefreshFailsWhenEitherFetchFails(t *testing.T) {
	s := NewService(&fakeMarket{candlesErr: errors.New("boom")}, nil)
	if _, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated); err == nil {
		t.Error("expected refresh to fail when candle fetch fails")
	}

	s = NewService(&fakeMarket{quoteErr: errors.New("boom")}, nil)
	if _, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated); err == nil {
		t.Error("expected refresh to fail when quote fetch fails")
	}

	if _, ok := s.Latest(); ok {
		t.Error("failed refresh must not commit a snapshot")
	}
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	market := &fakeMarket{quote: types.Quote{Symbol: "AAPL", Price: 100}}
	s := NewService(market, nil)

	first, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	market.candlesErr = errors.New("boom")
	if _, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated); err == nil {
		t.Fatal("expected second refresh to fail")
	}

	latest, ok := s.Latest()
	if !ok || latest.Token != first.Token {
		t.Errorf("expected first snapshot to survive, got ok=%v token=%d", ok, latest.Token)
	}
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	market := &fakeMarket{quote: types.Quote{Price: 100}}
	s := NewService(market, nil)

	// While the first request is still fetching, a second request runs
	// to completion and commits. The first must then be discarded.
	var newer types.Snapshot
	nested := false
	market.before = func() {
		if nested {
			return
		}
		nested = true
		snap, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated)
		if err != nil {
			t.Errorf("newer refresh failed: %v", err)
		}
		newer = snap
	}

	stale, err := s.Refresh(context.Background(), "AAPL", "D", types.ModeSimulated)
	if !errors.Is(err, ErrStaleRefresh) {
		t.Fatalf("expected ErrStaleRefresh, got %v", err)
	}

	latest, ok := s.Latest()
	if !ok || latest.Token != newer.Token {
		t.Errorf("expected newer snapshot to win, got ok=%v token=%d", ok, latest.Token)
	}
	if stale.Token >= newer.Token {
		t.Errorf("expected stale token %d to be older than %d", stale.Token, newer.Token)
	}
}

func TestSummary(t *testing.T) {
	repo := portfolio.New(kvstore.NewMemStore())
	s := NewService(nil, repo)

	// seeded portfolio: 500000 cash, AAPL 1450, TSM 4500
	sum, err := s.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Cash != 500000 {
		t.Errorf("expected cash 500000, got %v", sum.Cash)
	}
	if sum.Invested != 5950 {
		t.Errorf("expected invested 5950, got %v", sum.Invested)
	}
	if sum.NetWorth != 505950 {
		t.Errorf("expected net worth 505950, got %v", sum.NetWorth)
	}
	if sum.ByType[types.AssetStock] != 5950 {
		t.Errorf("expected stock bucket 5950, got %v", sum.ByType[types.AssetStock])
	}
}
