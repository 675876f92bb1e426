// Package location resolves raw FIO storages into named storage locations.
//
// Resolve is pure and deterministic: the same storages, name maps and CX set
// always yield the same ordered locations. InventoryMap indexes the result by
// addressable id for reconciliation.
package location
