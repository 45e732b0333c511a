// Package storage persists the profile photo and resume. Every upload is a new
// row; reads return the most recent insert.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

const schemaVersion = 1

// Supported database/sql driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrUnknownAsset is returned for an AssetKind without a table.
var ErrUnknownAsset = errors.New("unknown asset kind")

// Open connects to the configured database. SQLite paths get their parent
// directory created.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
	case DriverPostgres, "postgres":
		driver = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer avoids SQLITE_BUSY under concurrent uploads
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// AssetStore keeps one append-only table per asset kind
type AssetStore struct {
	db     *sql.DB
	driver string
}

func NewAssetStore(db *sql.DB, driver string) *AssetStore {
	if driver == "postgres" {
		driver = DriverPostgres
	}
	return &AssetStore{db: db, driver: driver}
}

// table returns the table and payload column for kind
func table(kind models.AssetKind) (string, string, error) {
	switch kind {
	case models.AssetPhoto:
		return fmt.Sprintf("photos_%d", schemaVersion), "photo", nil
	case models.AssetResume:
		return fmt.Sprintf("resume_%d", schemaVersion), "resume", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownAsset, kind)
	}
}

func (s *AssetStore) placeholder() string {
	if s.driver == DriverPostgres {
		return "$1"
	}
	return "?"
}

// Migrate creates the asset tables if they do not exist
func (s *AssetStore) Migrate(ctx context.Context) error {
	for _, kind := range []models.AssetKind{models.AssetPhoto, models.AssetResume} {
		name, column, err := table(kind)
		if err != nil {
			return err
		}

		var ddl string
		if s.driver == DriverPostgres {
			ddl = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGSERIAL PRIMARY KEY,
    %s TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, name, column)
		} else {
			ddl = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    %s TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`, name, column)
		}

		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	return nil
}

// Save appends data as the newest value for kind
func (s *AssetStore) Save(ctx context.Context, kind models.AssetKind, data string) error {
	name, column, err := table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, column, s.placeholder())
	if _, err := s.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("insert %s: %w", name, err)
	}
	return nil
}

// Latest returns the most recently inserted value for kind. ok is false when
// nothing was uploaded yet.
func (s *AssetStore) Latest(ctx context.Context, kind models.AssetKind) (string, bool, error) {
	name, column, err := table(kind)
	if err != nil {
		return "", false, err
	}

	// id, not created_at: CURRENT_TIMESTAMP only has second precision
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC LIMIT 1", column, name)

	var data string
	err = s.db.QueryRowContext(ctx, query).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", name, err)
	}
	return data, true, nil
}

// Ready reports whether the database answers
func (s *AssetStore) Ready(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
