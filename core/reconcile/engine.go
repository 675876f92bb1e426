package reconcile

import (
	"prunderground/core/location"
)

// ListingAvailable returns stock net of reserve, never below zero.
func ListingAvailable(stock, reserve int) int {
	if reserve < 0 {
		reserve = 0
	}
	if avail := stock - reserve; avail > 0 {
		return avail
	}
	return 0
}

// BundleAvailable returns how many complete bundles items can fill: the minimum
// over lines of floor(stock/quantity). Lines with a zero or negative quantity
// place no constraint; a bundle with no constraining line has availability 0.
func BundleAvailable(lines []BundleLine, items map[string]int) int {
	best := -1
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		stock := items[line.Ticker]
		if stock < 0 {
			stock = 0
		}
		n := stock / line.Quantity
		if best < 0 || n < best {
			best = n
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// Reconcile plans availability updates for listings and bundles against a fresh
// inventory snapshot. Only listings bound to a present storage and FIO_SYNC
// bundles bound to a present storage get an action; everything else keeps its
// stored value. Reconcile is pure.
func Reconcile(inv location.Inventory, listings []Listing, bundles []Bundle) *Plan {
	plan := &Plan{
		Results: make([]Result, 0, len(listings)+len(bundles)),
	}
	plan.Summary.Listings = len(listings)
	plan.Summary.Bundles = len(bundles)

	for _, l := range listings {
		res := Result{Kind: KindListing, ID: l.ID, StorageID: l.StorageID}
		switch items, ok := inv[l.StorageID]; {
		case l.StorageID == "":
			res.Outcome = OutcomeIgnored
		case !ok:
			res.Outcome = OutcomeRetained
		default:
			res.StoragePresent = true
			res.Outcome = OutcomeUpdated
			plan.add(Action{
				Type:      ActionUpdateListing,
				ID:        l.ID,
				Available: ListingAvailable(items[l.Ticker], l.Reserve),
				Previous:  l.Available,
			})
		}
		plan.record(res)
	}

	for _, b := range bundles {
		res := Result{Kind: KindBundle, ID: b.ID, StorageID: b.StorageID}
		switch items, ok := inv[b.StorageID]; {
		case !b.Mode.Synced() || b.StorageID == "":
			res.Outcome = OutcomeIgnored
			res.StoragePresent = ok && b.StorageID != ""
		case !ok:
			res.Outcome = OutcomeRetained
		default:
			res.StoragePresent = true
			res.Outcome = OutcomeUpdated
			plan.add(Action{
				Type:      ActionUpdateBundle,
				ID:        b.ID,
				Available: BundleAvailable(b.Lines, items),
				Previous:  b.Available,
			})
		}
		plan.record(res)
	}

	return plan
}

func (p *Plan) add(a Action) {
	p.Actions = append(p.Actions, a)
	if a.Changed() {
		p.Summary.Changed++
	}
}

func (p *Plan) record(r Result) {
	p.Results = append(p.Results, r)
	switch r.Outcome {
	case OutcomeUpdated:
		p.Summary.Updated++
	case OutcomeRetained:
		p.Summary.Retained++
	case OutcomeIgnored:
		p.Summary.Ignored++
	}
}

// ListingUpdates returns the planned listing values keyed by listing id.
func (p *Plan) ListingUpdates() map[uint]int {
	return p.updates(ActionUpdateListing)
}

// BundleUpdates returns the planned bundle values keyed by bundle id.
func (p *Plan) BundleUpdates() map[uint]int {
	return p.updates(ActionUpdateBundle)
}

func (p *Plan) updates(t ActionType) map[uint]int {
	out := make(map[uint]int)
	for _, a := range p.Actions {
		if a.Type == t {
			out[a.ID] = a.Available
		}
	}
	return out
}
