package reconcile

import "fmt"

// StockMode controls how a bundle's quantity is managed.
type StockMode string

const (
	// StockManual quantities are entered by the seller and never synced.
	StockManual StockMode = "MANUAL"
	// StockUnlimited bundles carry no quantity.
	StockUnlimited StockMode = "UNLIMITED"
	// StockMadeToOrder bundles are produced on demand and carry no quantity.
	StockMadeToOrder StockMode = "MADE_TO_ORDER"
	// StockFIOSync quantities are computed from live FIO storage.
	StockFIOSync StockMode = "FIO_SYNC"
)

// ParseStockMode validates s as a stock mode.
func ParseStockMode(s string) (StockMode, error) {
	switch m := StockMode(s); m {
	case StockManual, StockUnlimited, StockMadeToOrder, StockFIOSync:
		return m, nil
	default:
		return "", fmt.Errorf("unknown stock mode %q", s)
	}
}

// Synced reports whether the mode's quantity is owned by the sync engine.
func (m StockMode) Synced() bool {
	switch m {
	case StockFIOSync:
		return true
	case StockManual, StockUnlimited, StockMadeToOrder:
		return false
	default:
		return false
	}
}

// Listing is the reconciliation view of a single-item sell offer.
type Listing struct {
	ID        uint
	Ticker    string
	StorageID string
	Reserve   int
	Available *int
}

// BundleLine is one ticker and the quantity of it a bundle requires.
type BundleLine struct {
	Ticker   string
	Quantity int
}

// Bundle is the reconciliation view of a multi-item sell offer.
type Bundle struct {
	ID        uint
	Mode      StockMode
	StorageID string
	Lines     []BundleLine
	Available *int
}

// Kind names the offer type a result or action refers to.
type Kind string

const (
	KindListing Kind = "listing"
	KindBundle  Kind = "bundle"
)

// Outcome classifies what reconciliation decided for one offer.
type Outcome string

const (
	// OutcomeUpdated offers get a freshly computed availability.
	OutcomeUpdated Outcome = "updated"
	// OutcomeRetained offers are bound to a storage missing from the snapshot; the last value stays.
	OutcomeRetained Outcome = "retained"
	// OutcomeIgnored offers are unbound or not sync-managed.
	OutcomeIgnored Outcome = "ignored"
)

// Result is the reconciliation decision for a single offer.
type Result struct {
	Kind           Kind    `json:"kind"`
	ID             uint    `json:"id"`
	StorageID      string  `json:"storage_id,omitempty"`
	StoragePresent bool    `json:"storage_present"`
	Outcome        Outcome `json:"outcome"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionUpdateListing writes a listing's available quantity.
	ActionUpdateListing ActionType = "update_listing"
	// ActionUpdateBundle writes a bundle's available quantity.
	ActionUpdateBundle ActionType = "update_bundle"
)

// Action represents a planned availability write.
type Action struct {
	Type      ActionType `json:"type"`
	ID        uint       `json:"id"`
	Available int        `json:"available"`
	// Previous is the value being replaced; nil when never synced.
	Previous *int `json:"previous"`
}

// Changed reports whether the action alters the stored value.
func (a Action) Changed() bool {
	return a.Previous == nil || *a.Previous != a.Available
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	Results []Result    `json:"results"`
	Actions []Action    `json:"actions"`
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	Listings int `json:"listings"`
	Bundles  int `json:"bundles"`
	Updated  int `json:"updated"`
	Retained int `json:"retained"`
	Ignored  int `json:"ignored"`
	// Changed counts updates whose value differs from the stored one.
	Changed int `json:"changed"`
}
