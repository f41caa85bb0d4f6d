// Package config handles the XDG configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// EnvPrefix prefixes environment overrides, e.g. TODO_STORAGE_BACKEND.
	EnvPrefix = "TODO"

	// SettingsName is the settings file name without extension.
	SettingsName = "config"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultStorageKey is the key the task list is stored under.
	DefaultStorageKey = "todos"

	// DatabaseFile is the SQLite database filename used by the sqlite backend.
	DatabaseFile = "todo.db"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Storage selects where the task list is persisted.
	Storage StorageSettings

	// Google holds settings for pushing tasks to Google Tasks.
	Google GoogleSettings

	// Logger receives diagnostics. Nil means discard.
	Logger *slog.Logger
}

// StorageSettings configures the persisted store.
type StorageSettings struct {
	// Backend is "file" or "sqlite".
	Backend string

	// Path is the data directory (file backend) or database file (sqlite backend).
	// Empty means inside the config directory.
	Path string

	// Key is the key the task list blob is stored under.
	Key string
}

// GoogleSettings configures the push command.
type GoogleSettings struct {
	// List is the Google Tasks list name to push to. Empty means the default list.
	List string
}

// New creates a new Config with the default or specified config directory
// and loads settings from it.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads <Dir>/config.{yaml,toml,json} if present and TODO_* environment overrides.
// A missing settings file is not an error.
func (c *Config) Load() error {
	v := viper.New()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("google.list", "")

	v.AddConfigPath(c.Dir)
	v.SetConfigName(SettingsName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read settings: %w", err)
		}
	}

	c.Storage = StorageSettings{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
		Path:    v.GetString("storage.path"),
		Key:     v.GetString("storage.key"),
	}
	c.Google = GoogleSettings{
		List: v.GetString("google.list"),
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// StorageKey returns the configured blob key, defaulting to "todos".
func (c *Config) StorageKey() string {
	if c.Storage.Key == "" {
		return DefaultStorageKey
	}
	return c.Storage.Key
}

// DataDir returns the directory the file backend writes to.
func (c *Config) DataDir() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return c.Dir
}

// DatabasePath returns the SQLite database path used by the sqlite backend.
func (c *Config) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.Dir, DatabaseFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
