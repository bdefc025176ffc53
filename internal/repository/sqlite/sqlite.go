package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository represents a data repository that interacts with the database
// and provides logging capabilities. Inside RunInTx the same type is bound
// to the open transaction instead of the pool.
type Repository struct {
	db  *sql.DB
	q   dbtx
	log *slog.Logger
}

// NewRepository opens (or creates) the database file, checks the connection
// and applies the schema.
func NewRepository(ctx context.Context, log *slog.Logger, storagePath string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", storagePath)

	dtb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Check if the connection is actually established.
	if err = dtb.PingContext(ctx); err != nil {
		dtb.Close()
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, dtb); err != nil {
		dtb.Close()
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &Repository{db: dtb, q: dtb, log: log}, nil
}

// NewForTest wraps an already opened database, e.g. a sqlmock connection.
func NewForTest(dtb *sql.DB) *Repository {
	return &Repository{db: dtb, q: dtb, log: slog.New(slog.DiscardHandler)}
}

// initSchema creates the necessary tables if they don't already exist.
// Times are unix nanoseconds in UTC, prices are decimal strings and NULL when unknown.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS websites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		domain TEXT NOT NULL UNIQUE,
		base_url TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand_id TEXT NOT NULL REFERENCES brands(id),
		website_id TEXT NOT NULL REFERENCES websites(id),
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		current_price TEXT,
		original_price TEXT,
		currency TEXT NOT NULL,
		availability TEXT NOT NULL,
		image_urls TEXT NOT NULL DEFAULT '[]',
		size_options TEXT NOT NULL DEFAULT '[]',
		color_options TEXT NOT NULL DEFAULT '[]',
		source_url TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		last_scraped INTEGER NOT NULL,
		UNIQUE (website_id, source_url)
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);

	CREATE TABLE IF NOT EXISTS price_history (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		price TEXT,
		original_price TEXT,
		currency TEXT NOT NULL,
		availability TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history (product_id, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_price_history_recorded ON price_history (recorded_at);

	CREATE TABLE IF NOT EXISTS crawl_logs (
		id TEXT PRIMARY KEY,
		website_domain TEXT NOT NULL,
		status TEXT NOT NULL,
		total_products INTEGER NOT NULL DEFAULT 0,
		successful_products INTEGER NOT NULL DEFAULT 0,
		failed_products INTEGER NOT NULL DEFAULT 0,
		new_products INTEGER NOT NULL DEFAULT 0,
		updated_products INTEGER NOT NULL DEFAULT 0,
		start_time INTEGER NOT NULL,
		end_time INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		chat_id INTEGER PRIMARY KEY
	);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// RunInTx runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	const opn = "repository.sqlite.RunInTx"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit returns sql.ErrTxDone

	if err = fn(ctx, &Repository{db: r.db, q: tx, log: r.log}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// Close closes the connection to the database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close the database", "op", "repository.sqlite.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// Ping verifies the database is still reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("repository.sqlite.Ping: %w", err)
	}

	return nil
}

// DB is a getter for database handler.
func (r *Repository) DB() *sql.DB {
	return r.db
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
