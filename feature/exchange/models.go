package exchange

import "time"

// Quote is the stored CX quote of one material on one exchange.
type Quote struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	MaterialTicker string    `gorm:"size:10;not null;uniqueIndex:idx_exchange_ticker_code" json:"material_ticker"`
	ExchangeCode   string    `gorm:"size:10;not null;uniqueIndex:idx_exchange_ticker_code" json:"exchange_code"`
	PriceAsk       *float64  `json:"price_ask"`
	PriceBid       *float64  `json:"price_bid"`
	PriceAverage   *float64  `json:"price_average"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Quote) TableName() string { return "exchanges" }

// Key identifies a quote, e.g. {RAT NC1}.
type Key struct {
	Ticker   string
	Exchange string
}

func (k Key) String() string {
	return k.Ticker + "." + k.Exchange
}

// Summary reports the outcome of a price sync run.
type Summary struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	// Skipped counts records without a ticker or exchange code.
	Skipped int `json:"skipped"`
	// Snapshot is the archived object name, empty when archiving is off or failed.
	Snapshot string `json:"snapshot,omitempty"`
}

// Models lists the tables owned by this feature.
func Models() []any {
	return []any{&Quote{}}
}
