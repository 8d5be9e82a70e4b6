// Package database handles database connections and schema inspection.
//
// It wraps GORM so the key-value store can sit on sqlite for local use or on
// a shared MySQL or PostgreSQL server.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for the active dialect. The
// integrity feature uses it to confirm the store table has the expected shape.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "kv_entries")
package database
