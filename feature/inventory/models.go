package inventory

import (
	"time"

	"prunderground/core/pricing"
	"prunderground/core/reconcile"
)

// User is a seller with an optional FIO credential.
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FIOUsername   string     `gorm:"column:fio_username;size:50;uniqueIndex;not null" json:"fio_username"`
	CompanyCode   *string    `gorm:"size:10;index" json:"company_code"`
	CompanyName   *string    `gorm:"size:100" json:"company_name"`
	FIOAPIKey     *string    `gorm:"column:fio_api_key;size:100" json:"-"`
	FIOLastSynced *time.Time `gorm:"column:fio_last_synced" json:"fio_last_synced"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Listing is a single-material sell offer.
type Listing struct {
	ID                uint     `gorm:"primaryKey" json:"id"`
	UserID            uint     `gorm:"index;not null" json:"user_id"`
	MaterialTicker    string   `gorm:"size:10;index;not null" json:"material_ticker"`
	Quantity          *int     `json:"quantity"`
	PriceType         string   `gorm:"size:20;not null;default:CONTACT_ME" json:"price_type"`
	PriceValue        *float64 `json:"price_value"`
	PriceExchange     *string  `gorm:"size:10" json:"price_exchange"`
	PriceCXIsAbsolute bool     `gorm:"column:price_cx_is_absolute;not null;default:false" json:"price_cx_is_absolute"`
	Location          *string  `gorm:"size:50" json:"location"`
	StorageID         *string  `gorm:"size:100" json:"storage_id"`
	StorageName       *string  `gorm:"size:100" json:"storage_name"`
	ReserveQuantity   int      `gorm:"not null;default:0" json:"reserve_quantity"`
	// AvailableQuantity is owned by the sync engine; nil until the first sync.
	AvailableQuantity *int       `json:"available_quantity"`
	LowStockThreshold *int       `json:"low_stock_threshold"`
	ExpiresAt         *time.Time `json:"expires_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }

// PriceSpec returns the listing's pricing choice.
func (l Listing) PriceSpec() pricing.Spec {
	spec := pricing.Spec{
		Type:         pricing.Type(l.PriceType),
		Value:        l.PriceValue,
		CXIsAbsolute: l.PriceCXIsAbsolute,
	}
	if l.PriceExchange != nil {
		spec.Exchange = *l.PriceExchange
	}
	return spec
}

// Bundle is a set of materials sold together at one price.
type Bundle struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	StockMode string `gorm:"size:20;not null;default:MANUAL" json:"stock_mode"`
	// Quantity is the seller-entered count for MANUAL bundles.
	Quantity          *int         `json:"quantity"`
	Price             *float64     `json:"price"`
	Currency          *string      `gorm:"size:10" json:"currency"`
	Location          *string      `gorm:"size:50" json:"location"`
	StorageID         *string      `gorm:"size:100" json:"storage_id"`
	StorageName       *string      `gorm:"size:100" json:"storage_name"`
	AvailableQuantity *int         `json:"available_quantity"`
	LowStockThreshold *int         `json:"low_stock_threshold"`
	Items             []BundleItem `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE" json:"items"`
	ExpiresAt         *time.Time   `json:"expires_at"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (Bundle) TableName() string { return "bundles" }

// BundleItem is one line of a bundle.
type BundleItem struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	BundleID       uint   `gorm:"index;not null" json:"bundle_id"`
	MaterialTicker string `gorm:"size:10;not null" json:"material_ticker"`
	Quantity       int    `gorm:"not null;default:1" json:"quantity"`
}

func (BundleItem) TableName() string { return "bundle_items" }

// Models lists the tables owned by this feature.
func Models() []any {
	return []any{&User{}, &Listing{}, &Bundle{}, &BundleItem{}}
}

func listingViews(listings []Listing) []reconcile.Listing {
	out := make([]reconcile.Listing, len(listings))
	for i, l := range listings {
		out[i] = reconcile.Listing{
			ID:        l.ID,
			Ticker:    l.MaterialTicker,
			StorageID: deref(l.StorageID),
			Reserve:   l.ReserveQuantity,
			Available: l.AvailableQuantity,
		}
	}
	return out
}

// bundleViews converts stored bundles. An unknown stock mode is treated as
// MANUAL so a bad row is never synced.
func bundleViews(bundles []Bundle) []reconcile.Bundle {
	out := make([]reconcile.Bundle, len(bundles))
	for i, b := range bundles {
		mode, err := reconcile.ParseStockMode(b.StockMode)
		if err != nil {
			mode = reconcile.StockManual
		}
		lines := make([]reconcile.BundleLine, len(b.Items))
		for j, item := range b.Items {
			lines[j] = reconcile.BundleLine{Ticker: item.MaterialTicker, Quantity: item.Quantity}
		}
		out[i] = reconcile.Bundle{
			ID:        b.ID,
			Mode:      mode,
			StorageID: deref(b.StorageID),
			Lines:     lines,
			Available: b.AvailableQuantity,
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
