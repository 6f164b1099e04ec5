// filepath: internal/registry/registry.go
// Package registry is the media registry: a SQLite table of entries that
// front blobs in the media root, with the pending/expiry columns used by
// the reserve, write and finalize sequence.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gallerysaver/internal/db/migrations"
	"gallerysaver/internal/logging"
	"gallerysaver/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver
)

const tableName = "media_entries"

var (
	// ErrNotFound is returned when no entry matches a locator.
	ErrNotFound = errors.New("entry not found")
	// ErrCollectionUnavailable is returned when inserts into a collection are refused.
	ErrCollectionUnavailable = errors.New("collection unavailable")
	// ErrInvalidLocator is returned for locators that were not issued by this registry.
	ErrInvalidLocator = errors.New("invalid locator")
)

// Repository stores media entries and the blobs behind them.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
	Blobs   storage.BlobStore

	disabled map[string]bool
	now      func() time.Time
}

// Options tune a Repository.
type Options struct {
	// DisabledCollections refuse every insert, like a volume that is not mounted.
	DisabledCollections []string
	Now                 func() time.Time
}

// Open opens (or creates) the SQLite registry at path.
func Open(path string, blobs storage.BlobStore, opts Options) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY between our own statements.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to registry: %w", err)
	}
	return New(db, blobs, opts), nil
}

// New wraps an existing database handle.
func New(db *sql.DB, blobs storage.BlobStore, opts Options) *Repository {
	disabled := make(map[string]bool, len(opts.DisabledCollections))
	for _, c := range opts.DisabledCollections {
		disabled[c] = true
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Repository{
		DB:       db,
		Cache:    cache.New(5*time.Minute, 10*time.Minute),
		Builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Blobs:    blobs,
		disabled: disabled,
		now:      now,
	}
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.DB.Close()
}

// Tx is a wrapper around *sql.Tx.
type Tx struct {
	*sql.Tx
}

// BeginTx starts a new transaction.
func (r *Repository) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx}, nil
}

// Migrate runs a goose command ("up", "down" or "status") against the registry.
func (r *Repository) Migrate(command string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(r.DB, ".")
	case "down":
		err = goose.Down(r.DB, ".")
	case "status":
		err = goose.Status(r.DB, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// EnsureSchema applies all pending migrations.
func (r *Repository) EnsureSchema() error {
	return r.Migrate("up")
}

// SchemaVersion returns the current goose version of the registry.
func (r *Repository) SchemaVersion() (int64, error) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(r.DB)
}

// CollectionEnabled reports whether inserts into collection are accepted.
func (r *Repository) CollectionEnabled(collection string) bool {
	return !r.disabled[collection]
}
