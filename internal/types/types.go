package types

// MarketMode selects where market data comes from.
type MarketMode string

const (
	// ModeSimulated serves synthetic data only, no network access.
	ModeSimulated MarketMode = "SIMULATED"
	// ModeLive serves provider data, degrading to synthetic on failure.
	ModeLive MarketMode = "LIVE"
)

// TradeSide is the direction of a simulated trade.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// AssetType categorizes a portfolio holding.
type AssetType string

const (
	AssetCash       AssetType = "CASH"
	AssetStock      AssetType = "STOCK"
	AssetRealEstate AssetType = "REAL_ESTATE"
	AssetCrypto     AssetType = "CRYPTO"
	AssetOther      AssetType = "OTHER"
)

// Asset is one holding tracked by the portfolio. Exactly one CASH asset
// acts as the spendable balance; Symbol, Quantity and AvgCost are only
// meaningful for STOCK assets.
type Asset struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     AssetType `json:"type"`
	Value    float64   `json:"value"`
	Symbol   string    `json:"symbol,omitempty"`
	Quantity int       `json:"quantity,omitempty"`
	AvgCost  float64   `json:"avgCost,omitempty"`
}

// IsCash reports whether the asset is the spendable cash balance.
func (a Asset) IsCash() bool { return a.Type == AssetCash }

// IsStockFor reports whether the asset is the stock position for symbol.
func (a Asset) IsStockFor(symbol string) bool {
	return a.Type == AssetStock && a.Symbol == symbol
}

// Transaction is an immutable record of one settled trade.
// Total is always Price times Quantity.
type Transaction struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"` // calendar day, YYYY-MM-DD
	Symbol   string    `json:"symbol"`
	Side     TradeSide `json:"side"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Total    float64   `json:"total"`
}

// Candle is one trading-period bar. Invariant: Low <= Open,Close <= High.
type Candle struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Quote is a point-in-time price snapshot for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PrevClose     float64 `json:"prevClose"`
}

// Snapshot is the combined result of one market refresh: the candles and
// quote fetched together for a symbol, tagged with the refresh token that
// produced them.
type Snapshot struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
	Quote   Quote    `json:"quote"`
	Token   uint64   `json:"-"`
}

// Settlement is the outcome of applying one simulated trade: the full
// asset set after the cash and stock mutations, plus the transaction
// record that was appended.
type Settlement struct {
	Assets      []Asset     `json:"assets"`
	Transaction Transaction `json:"transaction"`
}

// Headline is one scraped news item used to enrich the insight prompt.
type Headline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}
