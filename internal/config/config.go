package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Board     BoardConfig     `mapstructure:"board"`
}

type StorageConfig struct {
	Backend      string        `mapstructure:"backend" validate:"oneof=file sqlite mysql memory"`
	Directory    string        `mapstructure:"directory" validate:"required_if=Backend file"`
	SQLitePath   string        `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ReadyAttempts   uint              `mapstructure:"ready_attempts" validate:"gte=1"`
}

type TemplatesConfig struct {
	OutlineMarkdown string `mapstructure:"outline_markdown" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory"`
}

type BoardConfig struct {
	ThreadWidth int `mapstructure:"thread_width" validate:"gte=20"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/storybuilder")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.directory", ".storybuilder")
	v.SetDefault("storage.sqlite_path", filepath.Join(".storybuilder", "storybuilder.db"))
	v.SetDefault("storage.write_timeout", 5*time.Second)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "storybuilder")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.ready_attempts", 5)
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.outline_markdown", "")
	v.SetDefault("outputs.directory", ".")
	v.SetDefault("board.thread_width", 40)

	if err := v.BindEnv("storage.backend", "STORYBUILDER_STORAGE_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind STORYBUILDER_STORAGE_BACKEND environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
