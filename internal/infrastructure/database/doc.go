// Package database manages the Postgres connection for the HuertoHogar API.
//
// This package provides:
//   - Connection pooling against the hosted database (Supabase or plain Postgres)
//   - Embedded SQL migrations applied at startup via goose
//   - Health checks for monitoring
//   - Proper lifecycle management (Open/Close)
//
// The auth and catalog layers only require equality lookups and inserts;
// no query builder or ORM is used, just database/sql with the pgx driver.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{DSN: cfg.Database.DSN})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
