// Package datasync copies persisted project state between storage backends.
package datasync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/storybuilder/internal/storage"
)

// ImportResult tracks counts for each copied key.
type ImportResult struct {
	KeysNew       int
	KeysSkipped   int
	KeysUpdated   int
	KeysUnchanged int
	KeysMissing   int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer copies project keys from one storage into another.
type Importer struct {
	source      storage.Storage
	destination storage.Storage
	writer      io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(source, destination storage.Storage, writer io.Writer) *Importer {
	return &Importer{
		source:      source,
		destination: destination,
		writer:      writer,
	}
}

// ImportProject copies every project key. Keys absent from the source are
// reported and left untouched in the destination.
func (imp *Importer) ImportProject(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	for _, key := range storage.ProjectKeys() {
		if err := imp.importKey(ctx, key, opts, &result); err != nil {
			return nil, fmt.Errorf("importKey(%s) > %w", key, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importKey(ctx context.Context, key string, opts ImportOptions, result *ImportResult) error {
	value, err := imp.source.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(imp.writer, "  [MISSING]  %s\n", key)
		result.KeysMissing++
		return nil
	}
	if err != nil {
		return fmt.Errorf("source.Get() > %w", err)
	}
	if !json.Valid(value) {
		return fmt.Errorf("value of %s in the source is not valid JSON", key)
	}

	existing, err := imp.destination.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if !opts.DryRun {
			if err := imp.destination.Set(ctx, key, value); err != nil {
				return fmt.Errorf("destination.Set() > %w", err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %s\n", key)
		result.KeysNew++
	case err != nil:
		return fmt.Errorf("destination.Get() > %w", err)
	case bytes.Equal(existing, value):
		result.KeysUnchanged++
	case !opts.UpdateExisting:
		fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", key)
		result.KeysSkipped++
	default:
		if !opts.DryRun {
			if err := imp.destination.Set(ctx, key, value); err != nil {
				return fmt.Errorf("destination.Set() > %w", err)
			}
		}
		fmt.Fprintf(imp.writer, "  [UPDATE]  %s\n", key)
		result.KeysUpdated++
	}
	return nil
}
