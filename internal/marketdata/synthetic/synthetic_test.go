package synthetic

import (
	"context"
	"testing"
	"time"
)

func TestCandleInvariants(t *testing.T) {
	g := New(0)

	candles, err := g.Candles(context.Background(), 60)
	if err != nil {
		t.Fatalf("Candles failed: %v", err)
	}
	if len(candles) != 60 {
		t.Fatalf("Expected 60 candles, got %d", len(candles))
	}

	for i, c := range candles {
		if c.Low > c.Open || c.Low > c.Close {
			t.Errorf("Bar %d: low %f above open %f / close %f", i, c.Low, c.Open, c.Close)
		}
		if c.High < c.Open || c.High < c.Close {
			t.Errorf("Bar %d: high %f below open %f / close %f", i, c.High, c.Open, c.Close)
		}
		if c.Volume < 500000 || c.Volume >= 1500000 {
			t.Errorf("Bar %d: volume %d outside [500000, 1500000)", i, c.Volume)
		}
	}
}

func TestCandleDatesConsecutive(t *testing.T) {
	g := New(0)

	candles, err := g.Candles(context.Background(), 10)
	if err != nil {
		t.Fatalf("Candles failed: %v", err)
	}

	prev, err := time.Parse("2006-01-02", candles[0].Date)
	if err != nil {
		t.Fatalf("Bad date %q: %v", candles[0].Date, err)
	}
	for _, c := range candles[1:] {
		d, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			t.Fatalf("Bad date %q: %v", c.Date, err)
		}
		if got := d.Sub(prev); got != 24*time.Hour {
			t.Errorf("Expected consecutive days, got gap %v between %s and %s", got, prev.Format("2006-01-02"), c.Date)
		}
		prev = d
	}

	today := time.Now().Format("2006-01-02")
	if last := candles[len(candles)-1].Date; last != today {
		t.Errorf("Expected last bar dated %s, got %s", today, last)
	}
}

func TestCandlesDefaultDays(t *testing.T) {
	g := New(0)

	candles, err := g.Candles(context.Background(), 0)
	if err != nil {
		t.Fatalf("Candles failed: %v", err)
	}
	if len(candles) != DefaultDays {
		t.Errorf("Expected %d candles by default, got %d", DefaultDays, len(candles))
	}
}

func TestQuoteFieldsConsistent(t *testing.T) {
	g := New(0)

	q, err := g.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if q.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", q.Symbol)
	}
	if q.Price <= 0 || q.High <= 0 || q.Low <= 0 || q.PrevClose <= 0 {
		t.Errorf("Expected positive price fields, got %+v", q)
	}
	if q.Low > q.Price || q.High < q.Price {
		t.Errorf("Expected low <= price <= high, got low=%f price=%f high=%f", q.Low, q.Price, q.High)
	}
}

func TestLatencyHonorsCancellation(t *testing.T) {
	g := New(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Candles(ctx, 10); err == nil {
		t.Error("Expected context error from cancelled fetch")
	}
}
