package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteDSN encodes cfg as go-sqlite3 connection parameters so that every
// pooled connection gets the same pragmas.
func sqliteDSN(cfg config.DatabaseConfig) string {
	params := url.Values{}
	params.Set("_txlock", "immediate")
	params.Set("_journal_mode", cfg.JournalMode)
	params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	params.Set("_synchronous", cfg.Synchronous)
	params.Set("_cache_size", strconv.Itoa(cfg.CacheSize))

	return "file:" + cfg.Path + "?" + params.Encode()
}

// NewSQLiteDBFromConfig opens the sqlite database at cfg.Path and checks it is reachable.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	return db, nil
}

// DBTotalSize returns the combined size of the database file and its -wal and -shm companions.
// Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64

	for _, suffix := range []string{"", "-wal", "-shm"} {
		info, err := os.Stat(dbPath + suffix)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return 0, fmt.Errorf("failed to stat %s: %w", dbPath+suffix, err)
		default:
			total += info.Size()
		}
	}

	return total, nil
}

func IsWALMode(db *sql.DB) (bool, error) {
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return false, err
	}
	return strings.EqualFold(mode, "wal"), nil
}

// CheckpointResult is the row returned by PRAGMA wal_checkpoint.
type CheckpointResult struct {
	Busy         int
	LogFrames    int
	Checkpointed int
}

// WALCheckpoint runs PRAGMA wal_checkpoint in mode (PASSIVE, FULL, RESTART or TRUNCATE).
func WALCheckpoint(db *sql.DB, mode string) (CheckpointResult, error) {
	var res CheckpointResult

	row := db.QueryRow("PRAGMA wal_checkpoint(" + strings.ToUpper(mode) + ")")
	if err := row.Scan(&res.Busy, &res.LogFrames, &res.Checkpointed); err != nil {
		return res, fmt.Errorf("failed to execute WAL checkpoint: %w", err)
	}

	return res, nil
}

// ErrDatabaseLocked is returned by Vacuum when another connection holds a lock.
var ErrDatabaseLocked = errors.New("database is locked")

// Vacuum rebuilds the database file to reclaim free pages.
func Vacuum(db *sql.DB) error {
	if _, err := db.Exec("VACUUM"); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: %w", ErrDatabaseLocked)
		}
		return fmt.Errorf("vacuum failed: %w", err)
	}

	return nil
}
