package interfaces

import "wealth-dashboard/internal/types"

// Portfolio owns the persisted asset and transaction collections. All
// other components hold transient, request-scoped copies of what it
// returns. Implementations seed both collections with default data on
// first access and are safe for one logical writer.
type Portfolio interface {
	Assets() ([]types.Asset, error)
	SaveAsset(a types.Asset) ([]types.Asset, error)
	DeleteAsset(id string) ([]types.Asset, error)
	Transactions() ([]types.Transaction, error)
	AddTransaction(tx types.Transaction) ([]types.Transaction, error)
}
