package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/internal/db"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/migrations"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
	"github.com/russross/meddler"
)

const defaultCheckpointMode = "TRUNCATE"

// kvRecord is one row of kv_records. Keys compare as BLOBs, which sqlite orders with memcmp.
type kvRecord struct {
	Namespace string `meddler:"namespace"`
	Key       []byte `meddler:"key"`
	Value     []byte `meddler:"value"`
}

type sqliteEngine struct {
	db             *sql.DB
	path           string
	checkpointMode string
	log            *logger.Logger
}

func newSQLiteEngine(
	cfg config.DatabaseConfig,
	maintenance *config.MaintenanceConfig,
	log *logger.Logger,
) (*sqliteEngine, error) {
	sqlDB, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run store migrations: %w", err)
	}

	mode := defaultCheckpointMode
	if maintenance != nil && maintenance.WALCheckpointMode != "" {
		mode = maintenance.WALCheckpointMode
	}

	return &sqliteEngine{
		db:             sqlDB,
		path:           cfg.Path,
		checkpointMode: mode,
		log:            log,
	}, nil
}

func (e *sqliteEngine) name() string { return config.StoreBackendSQLite }

func (e *sqliteEngine) namespace(name string) (store.OrderedStore, error) {
	return &sqliteNamespace{db: e.db, name: name}, nil
}

// compact checkpoints the WAL and vacuums the database file.
func (e *sqliteEngine) compact(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var compactErr error

	isWAL, err := db.IsWALMode(e.db)
	switch {
	case err != nil:
		compactErr = fmt.Errorf("failed to check journal mode: %w", err)
	case isWAL:
		res, err := db.WALCheckpoint(e.db, e.checkpointMode)
		if err != nil {
			compactErr = fmt.Errorf("WAL checkpoint failed: %w", err)
			break
		}

		WALCheckpointInc(strings.ToLower(e.checkpointMode))
		e.log.Infof("WAL checkpoint complete - mode: %s, busy: %d, log_frames: %d, checkpointed: %d",
			e.checkpointMode, res.Busy, res.LogFrames, res.Checkpointed)
		if res.Busy > 0 {
			e.log.Warnf("WAL checkpoint encountered %d busy pages (some pages not checkpointed)", res.Busy)
		}
	default:
		e.log.Debug("Database not in WAL mode, skipping WAL checkpoint")
	}

	if err := db.Vacuum(e.db); err != nil {
		if errors.Is(err, db.ErrDatabaseLocked) {
			e.log.Warn("VACUUM skipped, database is busy; retrying next cycle")
			return compactErr
		}
		e.log.Warnf("VACUUM failed: %v", err)
		if compactErr == nil {
			compactErr = err
		}
		return compactErr
	}

	VacuumRunsInc()
	return compactErr
}

func (e *sqliteEngine) diskSize() (int64, error) {
	return db.DBTotalSize(e.path)
}

func (e *sqliteEngine) Close() error {
	return e.db.Close()
}

// sqliteNamespace stores one indexer's records under its namespace column.
type sqliteNamespace struct {
	db   *sql.DB
	name string
}

func (n *sqliteNamespace) Has(ctx context.Context, key []byte) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	var found int
	err := n.db.QueryRowContext(ctx,
		`SELECT 1 FROM kv_records WHERE namespace = ? AND key = ?`, n.name, key).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapSQLiteError(err)
	}
	return true, nil
}

func (n *sqliteNamespace) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var rec kvRecord
	err := meddler.QueryRow(n.db, &rec,
		`SELECT namespace, key, value FROM kv_records WHERE namespace = ? AND key = ?`, n.name, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, mapSQLiteError(err)
	}

	if rec.Value == nil {
		rec.Value = []byte{}
	}
	return rec.Value, nil
}

func (n *sqliteNamespace) Scan(ctx context.Context, opts store.ScanOptions, fn store.ScanFunc) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	query := `SELECT namespace, key, value FROM kv_records WHERE namespace = ?`
	args := []any{n.name}
	if opts.GreaterOrEqual != nil {
		query += ` AND key >= ?`
		args = append(args, opts.GreaterOrEqual)
	}
	if opts.LessOrEqual != nil {
		query += ` AND key <= ?`
		args = append(args, opts.LessOrEqual)
	}
	query += ` ORDER BY key ASC`

	rows, err := n.db.QueryContext(ctx, query, args...)
	if err != nil {
		return mapSQLiteError(err)
	}
	defer rows.Close()

	for {
		var rec kvRecord
		if err := meddler.Scan(rows, &rec); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return mapSQLiteError(err)
		}

		if rec.Value == nil {
			rec.Value = []byte{}
		}
		if err := fn(rec.Key, rec.Value); err != nil {
			return err
		}
	}
}

func (n *sqliteNamespace) NewBatch() store.Batch {
	return &sqliteBatch{ns: n}
}

// Close is a no-op; the engine owns the database handle.
func (n *sqliteNamespace) Close() error {
	return nil
}

type sqliteOp struct {
	key    []byte
	value  []byte
	delete bool
}

// sqliteBatch buffers operations and applies them in one transaction.
type sqliteBatch struct {
	ns  *sqliteNamespace
	ops []sqliteOp
}

func (b *sqliteBatch) Put(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops = append(b.ops, sqliteOp{key: slices.Clone(key), value: slices.Clone(value)})
	return nil
}

func (b *sqliteBatch) Mark(key []byte) error {
	return b.Put(key, store.Marker{}.Bytes())
}

func (b *sqliteBatch) Delete(key []byte) error {
	b.ops = append(b.ops, sqliteOp{key: slices.Clone(key), delete: true})
	return nil
}

func (b *sqliteBatch) Len() int { return len(b.ops) }

func (b *sqliteBatch) Reset() { b.ops = b.ops[:0] }

func (b *sqliteBatch) Write(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	tx, err := b.ns.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewWriteError("begin", mapSQLiteError(err))
	}

	if err := b.apply(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return store.NewWriteError("apply", err)
	}

	if err := tx.Commit(); err != nil {
		return store.NewWriteError("commit", mapSQLiteError(err))
	}

	return nil
}

func (b *sqliteBatch) apply(tx *sql.Tx) error {
	for _, op := range b.ops {
		if _, err := tx.Exec(`DELETE FROM kv_records WHERE namespace = ? AND key = ?`, b.ns.name, op.key); err != nil {
			return mapSQLiteError(err)
		}
		if op.delete {
			continue
		}

		rec := &kvRecord{Namespace: b.ns.name, Key: op.key, Value: op.value}
		if err := meddler.Insert(tx, "kv_records", rec); err != nil {
			return mapSQLiteError(err)
		}
	}

	return nil
}

func mapSQLiteError(err error) error {
	if err != nil && strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %w", store.ErrClosed, err)
	}
	return err
}
