package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenSQLite establishes a read-only SQLite connection to the archive dump
// and verifies that the expected tables exist. The dump is produced by an
// external import job; this process never migrates or writes it.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(readOnlyDSN(path)), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := VerifySchema(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("archive database opened", zap.String("path", path))
	}

	return db, nil
}

func readOnlyDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?mode=ro", path)
}
