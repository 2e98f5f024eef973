package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/migrations"
)

// sqliteDSNParams make every committed insert durable before Exec returns.
const sqliteDSNParams = "?_sync=FULL&_journal_mode=WAL&_busy_timeout=5000"

const mappingsTable = "mappings"

// SQLiteDB is the shared SQLite database behind every sqlite journal.
type SQLiteDB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating when needed) the SQLite database at path
// and applies pending migrations.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*SQLiteDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Err(err).Str("path", path).Msg("error creating database dir")
		return nil, fmt.Errorf("%w: create database dir: %w", ErrStoreUnwritable, err)
	}

	conn, err := sql.Open("sqlite3", path+sqliteDSNParams)
	if err != nil {
		log.Err(err).Str("path", path).Msg("error opening database")
		return nil, fmt.Errorf("%w: open database: %w", ErrStoreUnreadable, err)
	}
	// a single writer keeps append order equal to commit order
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("path", path).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: ping database: %w", ErrStoreUnreadable, err)
	}

	if err = migrations.Migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnreadable, err)
	}
	log.Debug().Str("path", path).Msg("connected to sync state database")

	return &SQLiteDB{DB: conn, logger: log}, nil
}

// sqliteJournal stores the records of one store as rows of the shared
// mappings table, partitioned by store name.
type sqliteJournal struct {
	db    *sql.DB
	store string
}

func newSQLiteJournal(db *sql.DB, store string) *sqliteJournal {
	return &sqliteJournal{db: db, store: store}
}

func (j *sqliteJournal) Replay(ctx context.Context, fn func(key, value string)) error {
	query, args, err := sq.Select("key", "value").
		From(mappingsTable).
		Where(sq.Eq{"store": j.store}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return fmt.Errorf("build replay query: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: query %s: %w", ErrStoreUnreadable, j.store, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("%w: scan %s: %w", ErrStoreUnreadable, j.store, err)
		}
		fn(key, value)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: iterate %s: %w", ErrStoreUnreadable, j.store, err)
	}
	return nil
}

func (j *sqliteJournal) Append(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert(mappingsTable).
		Options("OR IGNORE").
		Columns("store", "key", "value").
		Values(j.store, key, value).
		ToSql()
	if err != nil {
		return fmt.Errorf("build append query: %w", err)
	}

	if _, err = j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert into %s: %w", ErrStoreUnwritable, j.store, err)
	}
	return nil
}

// Close is a no-op: the shared database is closed by SyncStores.
func (j *sqliteJournal) Close() error {
	return nil
}
