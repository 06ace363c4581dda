package database

import (
	"fmt"

	"gorm.io/gorm"
)

// The dump's table set is fixed by the import job. Opening a database that
// lacks one of these tables almost always means the path points at the
// wrong file, so the check fails fast instead of 404ing on every request.
var requiredTables = []string{"videos", "comments", "replies", "updated"}

// VerifySchema confirms that every archive table is present in the dump.
func VerifySchema(db *gorm.DB) error {
	for _, table := range requiredTables {
		var count int64
		err := db.Raw(
			"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("schema check for table %q failed: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("archive dump is missing table %q", table)
		}
	}
	return nil
}
