package sqlite

import (
	"context"
	"database/sql"
	"time"

	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes the repository.
type Options struct {
	// QueryTimeout bounds every statement; zero means no extra bound.
	QueryTimeout time.Duration
}

// SQLiteRepository stores key-value entries in the kv_entries table
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	now          func() time.Time
}

var _ repository.KeyValueStore = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a new SQLite repository instance with explicit options
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.QueryTimeout)
		defer cancel()
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{
		db:           db,
		queryTimeout: opts.QueryTimeout,
		now:          time.Now,
	}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Get retrieves the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_entries WHERE key = ?`
	entry, err := queryEntry(ctx, r.db, query, key)
	if err != nil || entry == nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return exec(ctx, r.db, "set "+key, query, key, value, FormatTimestamp(r.now()))
}
