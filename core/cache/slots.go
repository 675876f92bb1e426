package cache

import (
	"time"

	"prunderground/core/fio"
	"prunderground/core/location"
)

// SlotStatus describes one cache slot for presentation.
type SlotStatus struct {
	Cached           bool `json:"cached"`
	Expired          bool `json:"expired"`
	ExpiresInSeconds int  `json:"expires_in_seconds"`
}

// Report is the cache state of one user.
type Report struct {
	Slots       map[Namespace]SlotStatus `json:"slots"`
	LastRefresh *time.Time               `json:"last_refresh"`
}

// Status reports which of the user's slots are populated and how long they stay fresh.
// Slots that were never written are omitted.
func (c *Cache) Status(username string) Report {
	report := Report{Slots: make(map[Namespace]SlotStatus)}
	now := c.now()

	for _, ns := range UserNamespaces {
		if ns == LastRefresh {
			continue
		}
		item := c.store.Get(userKey(ns, username))
		if item == nil {
			continue
		}
		e := item.Value()
		expired := !now.Before(e.expiresAt)
		status := SlotStatus{Cached: !expired, Expired: expired}
		if !expired {
			status.ExpiresInSeconds = int(e.expiresAt.Sub(now).Seconds())
		}
		report.Slots[ns] = status
	}

	if at, ok := c.LastRefresh(username); ok {
		report.LastRefresh = &at
	}
	return report
}

func (c *Cache) Production(username string) ([]fio.ProductionLine, bool) {
	return Lookup[[]fio.ProductionLine](c, Production, username)
}

func (c *Cache) SetProduction(username string, lines []fio.ProductionLine) {
	c.Set(Production, username, lines)
}

func (c *Cache) Storage(username string) ([]fio.Storage, bool) {
	return Lookup[[]fio.Storage](c, Storage, username)
}

func (c *Cache) SetStorage(username string, storages []fio.Storage) {
	c.Set(Storage, username, storages)
}

func (c *Cache) Sites(username string) ([]fio.Site, bool) {
	return Lookup[[]fio.Site](c, Sites, username)
}

func (c *Cache) SetSites(username string, sites []fio.Site) {
	c.Set(Sites, username, sites)
}

func (c *Cache) Warehouses(username string) ([]fio.Warehouse, bool) {
	return Lookup[[]fio.Warehouse](c, Warehouses, username)
}

func (c *Cache) SetWarehouses(username string, warehouses []fio.Warehouse) {
	c.Set(Warehouses, username, warehouses)
}

// Suggestions are the tickers the user is currently producing.
func (c *Cache) Suggestions(username string) ([]string, bool) {
	return Lookup[[]string](c, Suggestions, username)
}

func (c *Cache) SetSuggestions(username string, tickers []string) {
	c.Set(Suggestions, username, tickers)
}

func (c *Cache) StorageLocations(username string) ([]location.StorageLocation, bool) {
	return Lookup[[]location.StorageLocation](c, StorageLocations, username)
}

func (c *Cache) SetStorageLocations(username string, locs []location.StorageLocation) {
	c.Set(StorageLocations, username, locs)
}

// LastRefresh returns when the user's slots were last populated from upstream.
func (c *Cache) LastRefresh(username string) (time.Time, bool) {
	return Lookup[time.Time](c, LastRefresh, username)
}

func (c *Cache) SetLastRefresh(username string, at time.Time) {
	c.Set(LastRefresh, username, at)
}

// AllMaterials returns the cached global material catalog.
func (c *Cache) AllMaterials() ([]fio.Material, bool) {
	v, ok := c.GetGlobal(AllMaterials)
	if !ok {
		return nil, false
	}
	materials, ok := v.([]fio.Material)
	return materials, ok
}

func (c *Cache) SetAllMaterials(materials []fio.Material) {
	c.SetGlobal(AllMaterials, materials)
}
