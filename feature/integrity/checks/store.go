package checks

import (
	"fmt"

	"nft-toolkit/core/database"

	"gorm.io/gorm"
)

// StoreColumns are the columns the database state store reads and writes.
var StoreColumns = []string{"key", "value", "updated_at"}

// StoreReport is the result of a state store schema check.
type StoreReport struct {
	Table          string   `json:"table"`
	Driver         string   `json:"driver"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckStoreSchema verifies that table carries every column in StoreColumns.
func CheckStoreSchema(db *gorm.DB, table string) (*StoreReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingColumns(db, table, StoreColumns...)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}

	report := &StoreReport{
		Table:          table,
		Driver:         db.Dialector.Name(),
		MissingColumns: missing,
		Status:         "ok",
	}
	if len(missing) > 0 {
		report.Status = "error"
	}
	return report, nil
}
