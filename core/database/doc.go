// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM to configure MySQL connections for production and SQLite for
// single-node runs and tests.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and pings
// the database within TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns, ExpectedColumns and MissingColumns back the `migrate --check`
// command, which reports drift between the GORM models and the live schema
// without altering it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	_ = database.Migrate(db, &inventory.User{}, &exchange.Quote{})
package database
