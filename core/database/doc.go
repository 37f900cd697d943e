// Package database handles database connections and schema inspection.
//
// It wraps GORM so that the same code paths run against MySQL in production
// and SQLite (file or in-memory) for single-user installs and tests.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, configures the pool and
// pings the database within TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for either dialect.
// VerifyColumns builds on it to confirm that migrated tables carry the columns
// the repositories rely on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	err = database.VerifyColumns(db, "reconcile_runs", []string{"id", "summary"})
package database
