package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/database"
)

// Open returns the storage backend selected by cfg.Backend. The returned
// close function releases database connections and must always be called.
func Open(ctx context.Context, cfg config.StorageConfig, dbCfg config.DatabaseConfig) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStorage(), noop, nil
	case config.BackendFile, "":
		s, err := NewFileStorage(cfg.Directory)
		if err != nil {
			return nil, nil, fmt.Errorf("NewFileStorage() > %w", err)
		}
		return s, noop, nil
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
			}
		}
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("database.OpenSQLite() > %w", err)
		}
		return openSQL(ctx, db, 1)
	case config.BackendMySQL:
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		return openSQL(ctx, db, dbCfg.ReadyAttempts)
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openSQL(ctx context.Context, db *sqlx.DB, attempts uint) (Storage, func() error, error) {
	if err := database.WaitReady(ctx, db, attempts); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.WaitReady() > %w", err)
	}
	s := NewSQLStorage(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("Migrate() > %w", err)
	}
	return s, db.Close, nil
}
