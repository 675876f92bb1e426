package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prunderground/core/database"
	"prunderground/core/utils"

	"gorm.io/gorm"
)

// ErrQuoteNotFound is returned when no quote exists for a ticker and exchange.
var ErrQuoteNotFound = errors.New("quote not found")

// Repository reads and writes stored CX quotes.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Quote returns the stored quote for ticker on exchange code.
func (r *Repository) Quote(ctx context.Context, ticker, code string) (*Quote, error) {
	var q Quote
	err := r.db.WithContext(ctx).
		Where("material_ticker = ? AND exchange_code = ?", strings.ToUpper(ticker), strings.ToUpper(code)).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote %s.%s: %w", ticker, code, err)
	}
	return &q, nil
}

// AskPrices returns the known ask prices for keys. Quotes without a positive
// ask are left out. With no keys, every known ask is returned.
func (r *Repository) AskPrices(ctx context.Context, keys []Key) (map[Key]float64, error) {
	q := r.db.WithContext(ctx).Model(&Quote{}).Where("price_ask IS NOT NULL AND price_ask > 0")

	var wanted map[Key]struct{}
	if len(keys) > 0 {
		wanted = make(map[Key]struct{}, len(keys))
		tickers := make([]string, 0, len(keys))
		for _, k := range keys {
			if _, dup := wanted[k]; !dup {
				tickers = append(tickers, k.Ticker)
			}
			wanted[k] = struct{}{}
		}
		q = q.Where("material_ticker IN ?", tickers)
	}

	var quotes []Quote
	if err := q.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to load ask prices: %w", err)
	}

	prices := make(map[Key]float64, len(quotes))
	for _, quote := range quotes {
		key := Key{Ticker: quote.MaterialTicker, Exchange: quote.ExchangeCode}
		if wanted != nil {
			if _, ok := wanted[key]; !ok {
				continue
			}
		}
		prices[key] = *quote.PriceAsk
	}
	return prices, nil
}

// LastSync returns the time of the freshest quote, or nil before the first sync.
func (r *Repository) LastSync(ctx context.Context) (*time.Time, error) {
	var latest []time.Time
	err := r.db.WithContext(ctx).Model(&Quote{}).
		Order("updated_at DESC").
		Limit(1).
		Pluck("updated_at", &latest).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read last price sync: %w", err)
	}
	if len(latest) == 0 {
		return nil, nil
	}
	return &latest[0], nil
}

// SyncAge renders how old the stored prices are, e.g. "5m ago" or "never synced".
func (r *Repository) SyncAge(ctx context.Context) (string, error) {
	last, err := r.LastSync(ctx)
	if err != nil {
		return "", err
	}
	return utils.PriceAge(last, r.now()), nil
}

// Count returns the number of stored quotes.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Quote{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}

// Upsert stores quotes in one transaction keyed by ticker and exchange code.
func (r *Repository) Upsert(ctx context.Context, quotes []Quote) (database.UpsertResult, error) {
	keys := make([][]any, len(quotes))
	for i, q := range quotes {
		keys[i] = []any{q.MaterialTicker, q.ExchangeCode}
	}
	return database.Upsert(ctx, r.db, quotes,
		[]string{"material_ticker", "exchange_code"}, keys,
		[]string{"price_ask", "price_bid", "price_average", "updated_at"})
}
