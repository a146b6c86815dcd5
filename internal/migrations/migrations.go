package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/BlockIndexor/internal/db"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
)

//go:embed 001_kv_records.sql
var mig001 string

// RunMigrations runs all migrations for the sqlite store.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	migrations := []db.Migration{
		{
			ID:  "001_kv_records.sql",
			SQL: mig001,
		},
	}

	return db.RunMigrationsDB(log, sqlDB, migrations)
}
