package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage stores each key as <directory>/<key>.json.
type FileStorage struct {
	directory string
}

// NewFileStorage creates a FileStorage rooted at directory, creating it if needed.
func NewFileStorage(directory string) (*FileStorage, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", directory, err)
	}
	return &FileStorage{directory: directory}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.directory, key+".json")
}

func (s *FileStorage) Get(_ context.Context, key string) ([]byte, error) {
	value, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path(key), err)
	}
	return value, nil
}

// Set writes to a temporary file and renames it over the old value, so a
// crash mid-write leaves either the old or the new value.
func (s *FileStorage) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.directory, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", s.path(key), err)
	}
	return nil
}

func (s *FileStorage) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s) > %w", s.path(key), err)
	}
	return nil
}
