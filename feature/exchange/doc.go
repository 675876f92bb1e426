// Package exchange keeps the shared CX price table fresh.
//
// PriceSyncJob fetches /exchange/all once per run and upserts every quote keyed
// by material ticker and exchange code in a single transaction. Scheduler runs
// the job on a fixed interval through robfig/cron with SkipIfStillRunning and
// Recover, so ticks never overlap and a panicking run never kills the timer.
// POST /exchange/sync runs the same job on demand and may overlap a tick.
//
// When archiving is enabled every fetched snapshot is also written to object
// storage under exchange/snapshots/<RFC3339>.json and old snapshots are pruned.
// Archive failures are logged and never affect the stored prices.
//
// Repository is the read side: single quotes, bulk ask prices for the pricing
// calculator and the age of the freshest quote.
package exchange
