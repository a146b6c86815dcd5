package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

// migrationsTable records which migrations were applied to a database.
const migrationsTable = "schema_migrations"

// Migration is one sql-migrate file: statements under "-- +migrate Up" and
// optionally "-- +migrate Down".
type Migration struct {
	ID  string
	SQL string
}

// RunMigrationsDB applies every migration not yet recorded in db, in order.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	src, err := migrationSource(migrations)
	if err != nil {
		return err
	}

	set := migrate.MigrationSet{TableName: migrationsTable}
	applied, err := set.Exec(db, "sqlite3", src, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if applied > 0 {
		log.Infof("applied %d of %d migrations", applied, len(migrations))
	} else {
		log.Debugf("schema up to date (%d migrations)", len(migrations))
	}
	return nil
}

func migrationSource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	src := &migrate.MemoryMigrationSource{}
	for _, m := range migrations {
		parsed, err := migrate.ParseMigration(m.ID, strings.NewReader(m.SQL))
		if err != nil {
			return nil, fmt.Errorf("invalid migration %s: %w", m.ID, err)
		}
		src.Migrations = append(src.Migrations, parsed)
	}
	return src, nil
}
