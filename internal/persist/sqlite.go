package persist

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteBackend stores each storage key as one JSON row.
type SQLiteBackend struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("sqlite backend requires a database path")
	}
	if err := runMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate settings database: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open settings database: %w", err)
	}
	return &SQLiteBackend{db: db, now: time.Now}, nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path)
}

// runMigrations applies the embedded migrations on a dedicated connection;
// closing the migrator closes that connection too.
func runMigrations(path string) error {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		db.Close()
		return err
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Load implements Backend.
func (b *SQLiteBackend) Load(ctx context.Context, key string) (map[string]any, bool, error) {
	var payload string
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE storage_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, err)
	}

	out := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, false, deckerrors.NewPersistenceError("load", key, deckerrors.NewParseError(key, 0, err))
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, true, nil
}

// Save implements Backend.
func (b *SQLiteBackend) Save(ctx context.Context, key string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return deckerrors.NewPersistenceError("save", key, fmt.Errorf("failed to encode settings: %w", err))
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO settings (storage_key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), b.now().Unix())
	if err != nil {
		return deckerrors.NewPersistenceError("save", key, err)
	}
	return nil
}

// Remove implements Backend.
func (b *SQLiteBackend) Remove(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM settings WHERE storage_key = ?`, key); err != nil {
		return deckerrors.NewPersistenceError("remove", key, err)
	}
	return nil
}

// Close implements Backend.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
