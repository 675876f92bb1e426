// Package reconcile reconciles live FIO inventory against stored sell offers.
//
// The engine is a pure transform: given an inventory snapshot (addressable id
// to ticker quantities) and the user's listings and bundles, Reconcile builds a
// Plan of availability writes plus a per-offer Result explaining the decision.
// Persisting the plan is the caller's job and must happen in one transaction.
//
// # Rules
//
//   - A listing bound to a storage present in the snapshot gets
//     max(0, stock - reserve).
//   - A FIO_SYNC bundle bound to a present storage gets the minimum over its
//     lines of floor(stock / quantity). Lines with quantity <= 0 are skipped;
//     a bundle left with no constraining line gets 0.
//   - Offers bound to a storage missing from the snapshot keep their last value.
//   - Unbound offers and MANUAL, UNLIMITED and MADE_TO_ORDER bundles are never touched.
//
// # Usage
//
//	inv := location.InventoryMap(locations)
//	plan := reconcile.Reconcile(inv, listings, bundles)
//	err := store.ApplySync(ctx, userID, plan, now)
package reconcile
