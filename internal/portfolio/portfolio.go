// Package portfolio is the persistent store adapter: it owns the two
// named collections, assets and transactions, each serialized as one
// JSON-array blob in the underlying key-value store.
package portfolio

import (
	"encoding/json"
	"fmt"
	"sync"

	"wealth-dashboard/internal/interfaces"
	"wealth-dashboard/internal/kvstore"
	"wealth-dashboard/internal/types"
)

const (
	assetsKey       = "assets"
	transactionsKey = "transactions"
)

// Repository stores assets and transactions in a kvstore.Store, seeding
// each collection with default data the first time it is read. It has
// exactly one logical writer; a mutex serializes the read-modify-write
// cycle of each blob.
type Repository struct {
	kv kvstore.Store
	mu sync.Mutex
}

var _ interfaces.Portfolio = (*Repository)(nil)

func New(kv kvstore.Store) *Repository {
	return &Repository{kv: kv}
}

// DefaultAssets is the dataset seeded on first access: one cash balance
// and two example stock holdings.
func DefaultAssets() []types.Asset {
	return []types.Asset{
		{ID: "1", Name: "Household Cash", Type: types.AssetCash, Value: 500000},
		{ID: "2", Name: "Apple Inc.", Type: types.AssetStock, Symbol: "AAPL", Quantity: 10, AvgCost: 145, Value: 1450},
		{ID: "3", Name: "Taiwan Semiconductor", Type: types.AssetStock, Symbol: "TSM", Quantity: 50, AvgCost: 90, Value: 4500},
	}
}

// DefaultTransactions is the transaction history seeded on first access,
// matching the example holdings above.
func DefaultTransactions() []types.Transaction {
	return []types.Transaction{
		{ID: "t1", Date: "2023-10-01", Symbol: "AAPL", Side: types.SideBuy, Price: 145, Quantity: 10, Total: 1450},
		{ID: "t2", Date: "2023-11-15", Symbol: "TSM", Side: types.SideBuy, Price: 90, Quantity: 50, Total: 4500},
	}
}

func (r *Repository) Assets() ([]types.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAssets()
}

// SaveAsset upserts one asset by ID and returns the full collection.
func (r *Repository) SaveAsset(a types.Asset) ([]types.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assets, err := r.loadAssets()
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range assets {
		if assets[i].ID == a.ID {
			assets[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		assets = append(assets, a)
	}

	if err := r.put(assetsKey, assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *Repository) DeleteAsset(id string) ([]types.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assets, err := r.loadAssets()
	if err != nil {
		return nil, err
	}

	kept := assets[:0]
	for _, a := range assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	if err := r.put(assetsKey, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (r *Repository) Transactions() ([]types.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadTransactions()
}

// AddTransaction prepends the record so the collection stays ordered
// most-recent-first. Transactions are never mutated or deleted.
func (r *Repository) AddTransaction(tx types.Transaction) ([]types.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.loadTransactions()
	if err != nil {
		return nil, err
	}

	txs = append([]types.Transaction{tx}, txs...)
	if err := r.put(transactionsKey, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *Repository) loadAssets() ([]types.Asset, error) {
	var assets []types.Asset
	seeded, err := r.load(assetsKey, &assets, DefaultAssets())
	if err != nil {
		return nil, err
	}
	if seeded {
		return DefaultAssets(), nil
	}
	return assets, nil
}

func (r *Repository) loadTransactions() ([]types.Transaction, error) {
	var txs []types.Transaction
	seeded, err := r.load(transactionsKey, &txs, DefaultTransactions())
	if err != nil {
		return nil, err
	}
	if seeded {
		return DefaultTransactions(), nil
	}
	return txs, nil
}

// load unmarshals the collection blob into out, writing the seed dataset
// first when the key has never been stored.
func (r *Repository) load(key string, out any, seed any) (seeded bool, err error) {
	b, ok, err := r.kv.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		if err := r.put(key, seed); err != nil {
			return false, fmt.Errorf("failed to seed %s: %w", key, err)
		}
		return true, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return false, nil
}

func (r *Repository) put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.kv.Put(key, b)
}
