package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"todo/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected backend file, got %q", cfg.Storage.Backend)
	}
	if cfg.StorageKey() != "todos" {
		t.Errorf("expected key todos, got %q", cfg.StorageKey())
	}
	if cfg.DataDir() != dir {
		t.Errorf("expected data dir %q, got %q", dir, cfg.DataDir())
	}
	if cfg.DatabasePath() != filepath.Join(dir, "todo.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Google.List != "" {
		t.Errorf("expected empty google list, got %q", cfg.Google.List)
	}
}

func TestNew_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	settings := "storage:\n  backend: SQLite\n  path: /tmp/x.db\n  key: work\ngoogle:\n  list: Inbox\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(settings), 0600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("expected backend sqlite, got %q", cfg.Storage.Backend)
	}
	if cfg.DatabasePath() != "/tmp/x.db" {
		t.Errorf("expected database path /tmp/x.db, got %q", cfg.DatabasePath())
	}
	if cfg.StorageKey() != "work" {
		t.Errorf("expected key work, got %q", cfg.StorageKey())
	}
	if cfg.Google.List != "Inbox" {
		t.Errorf("expected google list Inbox, got %q", cfg.Google.List)
	}
}

func TestNew_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_STORAGE_KEY", "errands")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageKey() != "errands" {
		t.Errorf("expected key errands, got %q", cfg.StorageKey())
	}
}

func TestNew_MalformedSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	if _, err := config.New(dir); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/xdg", "todo") {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestConfig_TokenLifecycle(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	if cfg.HasToken() {
		t.Fatal("expected no token")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}
	if !cfg.HasToken() {
		t.Fatal("expected token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("failed to remove token: %v", err)
	}
	if cfg.HasToken() {
		t.Error("expected token removed")
	}
}

func TestConfig_LogNeverNil(t *testing.T) {
	cfg := &config.Config{}
	if cfg.Log() == nil {
		t.Fatal("expected non-nil logger")
	}
	cfg.Log().Info("discarded")
}
