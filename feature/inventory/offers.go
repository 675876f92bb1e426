package inventory

import (
	"context"
	"strings"
	"time"

	"prunderground/core/pricing"
	"prunderground/core/reconcile"
	"prunderground/core/utils"
	"prunderground/feature/exchange"

	"go.uber.org/zap"
)

// ListingView is a listing as shown to buyers.
type ListingView struct {
	ID          uint                  `json:"id"`
	Ticker      string                `json:"material_ticker"`
	Quantity    *int                  `json:"quantity"`
	StorageID   *string               `json:"storage_id"`
	StorageName *string               `json:"storage_name"`
	Reserve     int                   `json:"reserve_quantity"`
	Available   *int                  `json:"available_quantity"`
	Threshold   *int                  `json:"low_stock_threshold"`
	Status      reconcile.StockStatus `json:"stock_status"`
	Price       pricing.Price         `json:"price"`
	Display     string                `json:"price_display"`
}

// BundleView is a bundle as shown to buyers.
type BundleView struct {
	ID        uint                  `json:"id"`
	Name      string                `json:"name"`
	StockMode string                `json:"stock_mode"`
	Quantity  *int                  `json:"quantity"`
	Available *int                  `json:"available_quantity"`
	Threshold *int                  `json:"low_stock_threshold"`
	Status    reconcile.StockStatus `json:"stock_status"`
	Price     *float64              `json:"price"`
	Items     []BundleItem          `json:"items"`
}

// Report is a seller's offers with their last known availability.
type Report struct {
	Username   string        `json:"username"`
	LastSynced *time.Time    `json:"fio_last_synced"`
	Staleness  string        `json:"staleness"`
	Listings   []ListingView `json:"listings"`
	Bundles    []BundleView  `json:"bundles"`
}

// Offers returns username's listings and bundles with stock status and
// effective prices. It never contacts FIO; availability is whatever the last
// sync stored.
func (s *Service) Offers(ctx context.Context, username string) (*Report, error) {
	user, err := s.store.User(ctx, username)
	if err != nil {
		return nil, err
	}
	listings, bundles, err := s.store.Offers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	asks := s.askPrices(ctx, listings)

	report := &Report{
		Username:   user.FIOUsername,
		LastSynced: user.FIOLastSynced,
		Staleness:  utils.SyncStaleness(user.FIOLastSynced, s.now()),
		Listings:   make([]ListingView, 0, len(listings)),
		Bundles:    make([]BundleView, 0, len(bundles)),
	}

	for _, l := range listings {
		spec := l.PriceSpec()
		var ask *float64
		if v, ok := asks[exchange.Key{Ticker: l.MaterialTicker, Exchange: strings.ToUpper(spec.Exchange)}]; ok {
			ask = &v
		}
		price := pricing.Evaluate(spec, ask)
		threshold := reconcile.ListingThreshold(l.LowStockThreshold)

		report.Listings = append(report.Listings, ListingView{
			ID:          l.ID,
			Ticker:      l.MaterialTicker,
			Quantity:    l.Quantity,
			StorageID:   l.StorageID,
			StorageName: l.StorageName,
			Reserve:     l.ReserveQuantity,
			Available:   l.AvailableQuantity,
			Threshold:   threshold,
			Status:      reconcile.Status(l.AvailableQuantity, threshold),
			Price:       price,
			Display:     price.Display(),
		})
	}

	for _, b := range bundles {
		report.Bundles = append(report.Bundles, BundleView{
			ID:        b.ID,
			Name:      b.Name,
			StockMode: b.StockMode,
			Quantity:  b.Quantity,
			Available: b.AvailableQuantity,
			Threshold: b.LowStockThreshold,
			Status:    bundleStatus(b),
			Price:     b.Price,
			Items:     b.Items,
		})
	}
	return report, nil
}

// bundleStatus classifies the count that matters for the bundle's stock mode.
// Unlimited and made-to-order bundles are always in stock.
func bundleStatus(b Bundle) reconcile.StockStatus {
	mode, err := reconcile.ParseStockMode(b.StockMode)
	if err != nil {
		return reconcile.StatusUnknown
	}
	switch mode {
	case reconcile.StockFIOSync:
		return reconcile.Status(b.AvailableQuantity, b.LowStockThreshold)
	case reconcile.StockManual:
		return reconcile.Status(b.Quantity, b.LowStockThreshold)
	case reconcile.StockUnlimited, reconcile.StockMadeToOrder:
		return reconcile.StatusOK
	default:
		return reconcile.StatusUnknown
	}
}

func (s *Service) askPrices(ctx context.Context, listings []Listing) map[exchange.Key]float64 {
	if s.prices == nil {
		return nil
	}
	var keys []exchange.Key
	for _, l := range listings {
		if pricing.Type(l.PriceType) != pricing.CXRelative || l.PriceExchange == nil || *l.PriceExchange == "" {
			continue
		}
		keys = append(keys, exchange.Key{Ticker: l.MaterialTicker, Exchange: strings.ToUpper(*l.PriceExchange)})
	}
	if len(keys) == 0 {
		return nil
	}
	asks, err := s.prices.AskPrices(ctx, keys)
	if err != nil {
		s.logger.Warn("Failed to load CX prices, showing offsets only", zap.Error(err))
		return nil
	}
	return asks
}
