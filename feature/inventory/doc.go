// Package inventory keeps sellers' offer availability in line with their live
// FIO storage.
//
// Service.Sync is the sync orchestrator: it checks the user's last sync
// against the configured TTL, fetches storage, sites and warehouses
// concurrently with the user's credential, resolves named storage locations,
// reconciles listings and FIO_SYNC bundles and writes the result together
// with the sync timestamp in a single transaction. Any failure before that
// write leaves the stored offers untouched and Sync reports false.
//
// The read paths (Inventory, Offers, MaterialStock, Producible) serve the
// per-user cache and the last stored availability; only Inventory and
// Producible go upstream on a cache miss.
package inventory
