// Package engine applies simulated trades to the portfolio: it debits or
// credits the cash balance, updates or creates the matching stock
// position, and appends the transaction record.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/logger"
	"wealth-dashboard/internal/trace"
	"wealth-dashboard/internal/types"
)

// ErrInsufficientFunds blocks a BUY the cash balance cannot cover. There
// are no partial fills; the portfolio is left untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidQuantity rejects non-positive trade quantities.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrUnknownSide rejects directions other than BUY and SELL.
var ErrUnknownSide = errors.New("unknown trade side")

type Engine struct {
	portfolio interfaces.Portfolio
}

var _ interfaces.Settler = (*Engine)(nil)

func New(p interfaces.Portfolio) *Engine {
	return &Engine{portfolio: p}
}

// Settle applies one trade at quotePrice. The caller must have fetched
// the quote already; no market access happens here.
//
// BUY debits cash (failing first on insufficient funds) and folds the
// purchase into the position's quantity-weighted average cost. SELL
// credits cash unconditionally and floors the position quantity at zero;
// selling with no position is a no-op on the stock side but still
// adjusts cash and records the transaction.
func (e *Engine) Settle(ctx context.Context, side types.TradeSide, symbol string, qty int, quotePrice float64) (types.Settlement, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Settle")
	defer span.End()

	if qty <= 0 {
		return types.Settlement{}, ErrInvalidQuantity
	}
	if side != types.SideBuy && side != types.SideSell {
		return types.Settlement{}, fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}

	assets, err := e.portfolio.Assets()
	if err != nil {
		return types.Settlement{}, fmt.Errorf("failed to load assets: %w", err)
	}

	totalPrice := quotePrice * float64(qty)
	cash := findCash(assets)

	if side == types.SideBuy {
		if cash == nil || cash.Value < totalPrice {
			return types.Settlement{}, ErrInsufficientFunds
		}
		cash.Value -= totalPrice
	} else if cash != nil {
		cash.Value += totalPrice
	}

	stock := applyStock(assets, side, symbol, qty, quotePrice, totalPrice)

	// Persist the two touched asset records, then the transaction. The
	// writes are not atomic across keys; asset state is authoritative
	// and the transaction log is the audit trail.
	updated := assets
	if cash != nil {
		if updated, err = e.portfolio.SaveAsset(*cash); err != nil {
			return types.Settlement{}, fmt.Errorf("failed to persist cash asset: %w", err)
		}
	}
	if stock != nil {
		if updated, err = e.portfolio.SaveAsset(*stock); err != nil {
			return types.Settlement{}, fmt.Errorf("failed to persist stock asset: %w", err)
		}
	}

	tx := types.Transaction{
		ID:       uuid.NewString(),
		Date:     time.Now().Format("2006-01-02"),
		Symbol:   symbol,
		Side:     side,
		Price:    quotePrice,
		Quantity: qty,
		Total:    totalPrice,
	}
	if _, err := e.portfolio.AddTransaction(tx); err != nil {
		return types.Settlement{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	logger.Trade(ctx, symbol, string(side), qty, quotePrice, totalPrice)

	return types.Settlement{Assets: updated, Transaction: tx}, nil
}

// findCash returns the single CASH asset, or nil when the portfolio has
// none (the balance is then treated as zero).
func findCash(assets []types.Asset) *types.Asset {
	for i := range assets {
		if assets[i].IsCash() {
			return &assets[i]
		}
	}
	return nil
}

// applyStock mutates (or creates) the stock position for the trade and
// returns it, or nil when a SELL has no position to touch.
func applyStock(assets []types.Asset, side types.TradeSide, symbol string, qty int, quotePrice, totalPrice float64) *types.Asset {
	var stock *types.Asset
	for i := range assets {
		if assets[i].IsStockFor(symbol) {
			stock = &assets[i]
			break
		}
	}

	if stock == nil {
		if side != types.SideBuy {
			return nil
		}
		return &types.Asset{
			ID:       uuid.NewString(),
			Name:     symbol,
			Type:     types.AssetStock,
			Symbol:   symbol,
			Quantity: qty,
			AvgCost:  quotePrice,
			Value:    totalPrice,
		}
	}

	if side == types.SideBuy {
		oldTotal := stock.AvgCost * float64(stock.Quantity)
		newQty := stock.Quantity + qty
		stock.AvgCost = (oldTotal + totalPrice) / float64(newQty)
		stock.Quantity = newQty
		stock.Value = quotePrice * float64(newQty)
		return stock
	}

	newQty := stock.Quantity - qty
	if newQty <= 0 {
		// Position sold out: the next BUY starts a fresh cost basis.
		stock.Quantity = 0
		stock.Value = 0
		stock.AvgCost = 0
	} else {
		stock.Quantity = newQty
		stock.Value = stock.AvgCost * float64(newQty)
	}
	return stock
}
