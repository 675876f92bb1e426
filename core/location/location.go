package location

import (
	"sort"
	"strings"

	"prunderground/core/fio"
)

const (
	// KindStore is a base storage on a planet site.
	KindStore = "STORE"
	// KindWarehouse is a rented warehouse storage.
	KindWarehouse = "WAREHOUSE_STORE"

	unknownName   = "Unknown"
	fallbackIDLen = 12
)

// StorageLocation is a storage normalized to a human-readable location.
type StorageLocation struct {
	AddressableID string         `json:"addressable_id"`
	Kind          string         `json:"type"`
	Name          string         `json:"name"`
	IsCX          bool           `json:"is_cx"`
	Items         map[string]int `json:"items"`
}

// Inventory maps an addressable id to the ticker quantities stored there.
type Inventory map[string]map[string]int

// Stock returns the quantity of ticker at addressableID and whether the storage exists.
func (inv Inventory) Stock(addressableID, ticker string) (int, bool) {
	items, ok := inv[addressableID]
	if !ok {
		return 0, false
	}
	return items[ticker], true
}

// Resolve turns raw storages into named locations.
//
// Naming precedence: the storage's own name, then the warehouse map by storage
// id for warehouse stores, then the site map by addressable id for base stores,
// then the first 12 characters of the addressable id ("Unknown" if it is empty).
// A location is a CX location when its name is in cxStations.
//
// Results are ordered CX first, then by case-insensitive name, then base stores
// before warehouses before other kinds, then by addressable id.
func Resolve(storages []fio.Storage, sites, warehouses map[string]string, cxStations map[string]struct{}) []StorageLocation {
	result := make([]StorageLocation, 0, len(storages))
	for _, s := range storages {
		name := resolveName(s, sites, warehouses)
		_, isCX := cxStations[name]

		items := make(map[string]int, len(s.Items))
		for _, item := range s.Items {
			if item.MaterialTicker == "" {
				continue
			}
			items[item.MaterialTicker] += item.MaterialAmount
		}

		result = append(result, StorageLocation{
			AddressableID: s.AddressableID,
			Kind:          s.Type,
			Name:          name,
			IsCX:          isCX,
			Items:         items,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.IsCX != b.IsCX {
			return a.IsCX
		}
		if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
			return an < bn
		}
		if ar, br := kindRank(a.Kind), kindRank(b.Kind); ar != br {
			return ar < br
		}
		return a.AddressableID < b.AddressableID
	})
	return result
}

func resolveName(s fio.Storage, sites, warehouses map[string]string) string {
	if s.Name != "" {
		return s.Name
	}
	if s.Type == KindWarehouse {
		if name, ok := warehouses[s.StorageID]; ok && name != "" {
			return name
		}
	}
	if s.Type == KindStore {
		if name, ok := sites[s.AddressableID]; ok && name != "" {
			return name
		}
	}
	if s.AddressableID == "" {
		return unknownName
	}
	if id := []rune(s.AddressableID); len(id) > fallbackIDLen {
		return string(id[:fallbackIDLen])
	}
	return s.AddressableID
}

func kindRank(kind string) int {
	switch kind {
	case KindStore:
		return 0
	case KindWarehouse:
		return 1
	default:
		return 2
	}
}

// InventoryMap indexes locations by addressable id.
func InventoryMap(locations []StorageLocation) Inventory {
	inv := make(Inventory, len(locations))
	for _, loc := range locations {
		items := make(map[string]int, len(loc.Items))
		for ticker, qty := range loc.Items {
			items[ticker] = qty
		}
		inv[loc.AddressableID] = items
	}
	return inv
}

// MaterialStock is the quantity of one ticker at one location.
type MaterialStock struct {
	AddressableID string `json:"addressable_id"`
	Kind          string `json:"type"`
	Name          string `json:"name"`
	Amount        int    `json:"amount"`
}

// MaterialInventory lists the locations holding ticker, in location order.
func MaterialInventory(locations []StorageLocation, ticker string) []MaterialStock {
	var out []MaterialStock
	for _, loc := range locations {
		if qty, ok := loc.Items[ticker]; ok {
			out = append(out, MaterialStock{
				AddressableID: loc.AddressableID,
				Kind:          loc.Kind,
				Name:          loc.Name,
				Amount:        qty,
			})
		}
	}
	return out
}

// ProductionMap maps each material to the user's buildings that can produce it.
// Recipe keys have the form "BUILDING-RECIPE".
func ProductionMap(buildings map[string]struct{}, outputs []fio.RecipeOutput) map[string][]string {
	production := make(map[string][]string)
	for _, out := range outputs {
		if out.Key == "" || out.Material == "" {
			continue
		}
		building, _, found := strings.Cut(out.Key, "-")
		if !found {
			continue
		}
		if _, owned := buildings[building]; !owned {
			continue
		}
		if !contains(production[out.Material], building) {
			production[out.Material] = append(production[out.Material], building)
		}
	}
	return production
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
