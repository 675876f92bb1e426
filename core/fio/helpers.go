package fio

import "sort"

// SiteNames maps SiteId to the planet name of each site.
func SiteNames(sites []Site) map[string]string {
	names := make(map[string]string, len(sites))
	for _, s := range sites {
		name := s.PlanetName
		if name == "" {
			name = s.PlanetIdentifier
		}
		if s.SiteID != "" && name != "" {
			names[s.SiteID] = name
		}
	}
	return names
}

// WarehouseNames maps StoreId to the location name of each rented warehouse.
func WarehouseNames(warehouses []Warehouse) map[string]string {
	names := make(map[string]string, len(warehouses))
	for _, w := range warehouses {
		name := w.LocationName
		if name == "" {
			name = w.LocationNaturalID
		}
		if w.StoreID != "" && name != "" {
			names[w.StoreID] = name
		}
	}
	return names
}

// ActiveProduction returns the sorted tickers produced by the user's queued orders.
func ActiveProduction(lines []ProductionLine) []string {
	seen := make(map[string]struct{})
	for _, line := range lines {
		for _, order := range line.Orders {
			for _, out := range order.Outputs {
				if out.MaterialTicker != "" {
					seen[out.MaterialTicker] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(seen)
}

// BuildingTickers returns the set of building tickers placed across all sites.
func BuildingTickers(sites []Site) map[string]struct{} {
	tickers := make(map[string]struct{})
	for _, s := range sites {
		for _, b := range s.Buildings {
			if t := b.TickerOrFallback(); t != "" {
				tickers[t] = struct{}{}
			}
		}
	}
	return tickers
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
