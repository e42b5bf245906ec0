// Package testutil provides shared test helpers for creating config files and project fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/storybuilder/internal/project"
	"github.com/at-ishikawa/storybuilder/internal/storage"
)

// SetupTestConfig creates a config file using the file backend and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return SetupTestConfigWithBackend(t, tmpDir, "file")
}

// SetupTestConfigWithBackend creates a config file for the given storage backend.
// Returns the path to the generated config file.
func SetupTestConfigWithBackend(t *testing.T, tmpDir string, backend string) string {
	t.Helper()

	dirs := []string{"project", "outputs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  backend: %s
  directory: %s
  sqlite_path: %s
  write_timeout: 2s
outputs:
  directory: %s
`,
		backend,
		filepath.Join(tmpDir, "project"),
		filepath.Join(tmpDir, "project", "storybuilder.db"),
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// Fixture holds the ids of a seeded project.
type Fixture struct {
	RomanceID string
	OpeningID string
	MeetingID string
	UnusedID  string
}

// SeedProject fills st with a small project: a second "Romance" subplot, three
// scenes and a two-scene thread (meeting, then opening).
func SeedProject(t *testing.T, st storage.Storage) (*project.Store, Fixture) {
	t.Helper()

	store, err := project.Open(context.Background(), st)
	require.NoError(t, err)

	romance := store.AddSubplot("Romance", "#ff0066")
	opening := store.AddNode(project.DefaultSubplotID, "Opening storm", 3)
	meeting := store.AddNode(romance.ID, "First meeting", 7)
	unused := store.AddNode(romance.ID, "Unused", 1)
	store.AddNote(meeting.ID, "rain")
	store.AddToThread(meeting.ID)
	store.AddToThread(opening.ID)
	require.NoError(t, store.Err())

	return store, Fixture{
		RomanceID: romance.ID,
		OpeningID: opening.ID,
		MeetingID: meeting.ID,
		UnusedID:  unused.ID,
	}
}
