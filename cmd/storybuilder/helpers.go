package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
	"github.com/at-ishikawa/storybuilder/internal/storage"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	boldColor    = color.New(color.Bold)
)

// stdoutPath makes a command write to its output stream instead of a file.
const stdoutPath = "-"

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openProject loads the configuration and the project it points to. The
// returned close function must always be called.
func openProject(ctx context.Context) (*config.Config, *project.Store, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	st, closeStorage, err := storage.Open(ctx, cfg.Storage, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("storage.Open() > %w", err)
	}
	store, err := project.Open(ctx, st, project.WithWriteTimeout(cfg.Storage.WriteTimeout))
	if err != nil {
		return nil, nil, nil, errors.Join(fmt.Errorf("project.Open() > %w", err), closeStorage())
	}
	return cfg, store, closeStorage, nil
}

// withProject runs fn against the configured project and fails when a
// change could not be saved.
func withProject(ctx context.Context, fn func(cfg *config.Config, store *project.Store) error) (err error) {
	cfg, store, closeStorage, err := openProject(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closeStorage() > %w", closeErr))
		}
	}()

	if err := fn(cfg, store); err != nil {
		return err
	}
	if err := store.Err(); err != nil {
		return fmt.Errorf("failed to save the project: %w", err)
	}
	return nil
}

func requireNode(store *project.Store, id string) (project.Node, error) {
	n, ok := store.Node(id)
	if !ok {
		return project.Node{}, fmt.Errorf("scene %q not found", id)
	}
	return n, nil
}

func requireSubplot(store *project.Store, id string) (project.Subplot, error) {
	sp, ok := store.Subplot(id)
	if !ok {
		return project.Subplot{}, fmt.Errorf("subplot %q not found", id)
	}
	return sp, nil
}

// outputPath resolves where a generated file goes: the given path, or
// defaultName inside the configured outputs directory.
func outputPath(cfg *config.Config, path, defaultName string) string {
	if path != "" {
		return path
	}
	return filepath.Join(cfg.Outputs.Directory, defaultName)
}

// writeOutput writes through write into path, or into w when path is stdoutPath.
func writeOutput(w io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == stdoutPath {
		return write(w)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("f.Close() > %w", closeErr)
		}
	}()
	if err := write(f); err != nil {
		return err
	}
	successColor.Fprintf(w, "Wrote %s\n", path)
	return nil
}
