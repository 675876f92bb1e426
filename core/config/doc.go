// Package config loads the service configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults taken from each section's `default` struct tags. Nested keys map
// to upper-case names joined by underscores: fio.base_url is FIO_BASE_URL,
// sync.ttl is SYNC_TTL and exchange.interval is EXCHANGE_INTERVAL.
//
// # Configuration Structure
//
//   - Server: ops API port, API key and shutdown timeout
//   - Database: driver (mysql or sqlite) and connection details
//   - Storage: MinIO credentials for the exchange snapshot archive
//   - Log: level and encoding
//   - FIO: upstream base URL, timeout, rate limit and circuit breaker
//   - Cache: TTL and capacity of the shared cache
//   - Sync: staleness TTL for per-user inventory sync
//   - Exchange: CX price job interval and archiving
//   - Catalog: planet and material staleness windows
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.FIO.BaseURL)
package config
