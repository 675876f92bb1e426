// Package catalog keeps the planet/station registry and the material catalog.
//
// Both catalogs change rarely, so syncs are gated by a staleness TTL (14 days
// for planets, 30 for materials) unless forced. The five CX stations are not
// part of the FIO planet list and are upserted alongside it with planet ids of
// the form STATION_<code>.
//
// CXStationNames is the registry lookup the inventory sync uses to flag CX
// storage locations.
package catalog
