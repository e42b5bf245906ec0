package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/storybuilder/schemas"
)

// SQLStorage stores values in the kv_entries table of a MySQL or SQLite database.
type SQLStorage struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStorage creates a SQLStorage. Call Migrate before first use.
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db, now: time.Now}
}

// Migrate applies the embedded migrations in file name order.
// Every migration is idempotent, so applying them again is safe.
func (s *SQLStorage) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(schemas.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("fs.ReadDir(migrations) > %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		query, err := fs.ReadFile(schemas.Migrations, path.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(query)); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w", entry.Name(), err)
		}
		slog.Default().Debug("applied migration",
			slog.String("name", entry.Name()),
			slog.String("driver", s.db.DriverName()),
		)
	}
	return nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		s.db.Rebind("SELECT entry_value FROM kv_entries WHERE storage_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(kv_entries) > %w", err)
	}
	return []byte(value), nil
}

// Set replaces the row in a transaction. Delete-then-insert keeps the
// statement portable between MySQL and SQLite.
func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		tx.Rebind("DELETE FROM kv_entries WHERE storage_key = ?"), key); err != nil {
		return fmt.Errorf("tx.ExecContext(delete kv_entry) > %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO kv_entries (storage_key, entry_value, updated_at_ms) VALUES (?, ?, ?)"),
		key, string(value), s.now().UnixMilli()); err != nil {
		return fmt.Errorf("tx.ExecContext(insert kv_entry) > %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		s.db.Rebind("DELETE FROM kv_entries WHERE storage_key = ?"), key); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv_entry) > %w", err)
	}
	return nil
}
