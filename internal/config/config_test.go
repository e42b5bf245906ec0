package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:      BackendFile,
			Directory:    ".storybuilder",
			SQLitePath:   filepath.Join(".storybuilder", "storybuilder.db"),
			WriteTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:          "localhost",
			Port:          3306,
			Database:      "storybuilder",
			Username:      "user",
			ReadyAttempts: 5,
		},
		Outputs: OutputsConfig{
			Directory: ".",
		},
		Board: BoardConfig{
			ThreadWidth: 40,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:            "no config file uses defaults",
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `storage:
  backend: sqlite
  sqlite_path: custom/story.db
  write_timeout: 2s
outputs:
  directory: custom/outputs
board:
  thread_width: 60
`,
			useExplicitPath: false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Backend = BackendSQLite
				cfg.Storage.SQLitePath = "custom/story.db"
				cfg.Storage.WriteTimeout = 2 * time.Second
				cfg.Outputs.Directory = "custom/outputs"
				cfg.Board.ThreadWidth = 60
				return cfg
			},
		},
		{
			name: "explicit config file path with database settings",
			configContent: `storage:
  backend: mysql
database:
  host: db.example.com
  port: 3307
  database: stories
  username: writer
  max_open_conns: 10
`,
			useExplicitPath: true,
			env:             map[string]string{"DB_PASSWORD": "secret"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Backend = BackendMySQL
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Database = "stories"
				cfg.Database.Username = "writer"
				cfg.Database.Password = "secret"
				cfg.Database.MaxOpenConns = 10
				return cfg
			},
		},
		{
			name:            "backend from environment variable",
			useExplicitPath: false,
			env:             map[string]string{"STORYBUILDER_STORAGE_BACKEND": "memory"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Backend = BackendMemory
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  backend: file
  invalid yaml format here [[[
`,
			useExplicitPath: false,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown backend",
			configContent: `storage:
  backend: redis
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"storage.backend must be one of [file sqlite mysql memory]",
			},
		},
		{
			name: "file backend without directory",
			configContent: `storage:
  backend: file
  directory: ""
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"storage.directory is required when the storage backend is file",
			},
		},
		{
			name: "missing markdown template file",
			configContent: `templates:
  outline_markdown: /nonexistent/outline.md.go.tmpl
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"templates.outline_markdown must be an existing and readable file",
			},
		},
		{
			name: "thread width too narrow",
			configContent: `board:
  thread_width: 5
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"board.thread_width must be 20 or greater",
			},
		},
		{
			name: "no database readiness attempts",
			configContent: `database:
  ready_attempts: 0
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"database.ready_attempts must be 1 or greater",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)
			// Empty environment variables are ignored by viper.
			t.Setenv("STORYBUILDER_STORAGE_BACKEND", "")
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}
