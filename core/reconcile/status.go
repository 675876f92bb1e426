package reconcile

// StockStatus is the low-stock classification shown next to an offer.
type StockStatus string

const (
	StatusUnknown StockStatus = "unknown"
	StatusOut     StockStatus = "out"
	StatusLow     StockStatus = "low"
	StatusOK      StockStatus = "ok"
)

// DefaultListingThreshold is the low-stock threshold applied to listings
// without an explicit one. Bundles have no default.
const DefaultListingThreshold = 10

// Status classifies available against threshold: zero is out, up to and
// including the threshold is low, anything above is ok. A nil threshold
// disables the low band. A nil available (never synced) is unknown.
func Status(available, threshold *int) StockStatus {
	if available == nil {
		return StatusUnknown
	}
	if *available <= 0 {
		return StatusOut
	}
	if threshold != nil && *available <= *threshold {
		return StatusLow
	}
	return StatusOK
}

// ListingThreshold returns the listing's threshold or the listing default.
func ListingThreshold(threshold *int) *int {
	if threshold != nil {
		return threshold
	}
	d := DefaultListingThreshold
	return &d
}
