package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens a sqlite database, migrates the schema and seeds
// the defaults. Used by the test suites (in-memory databases) and for
// quick local runs without Postgres.
func OpenSQLite(dsn string) (Database, error) {
	// The cascade and set-null behavior lives in FK constraints, so
	// sqlite has to be told to enforce them.
	if !strings.Contains(dsn, "_foreign_keys=") {
		if strings.Contains(dsn, "?") {
			dsn += "&_foreign_keys=on"
		} else {
			dsn += "?_foreign_keys=on"
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := Migrate(gormDB); err != nil {
		return nil, err
	}
	if err := Seed(gormDB); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return &GormDatabase{DB: gormDB}, nil
}
