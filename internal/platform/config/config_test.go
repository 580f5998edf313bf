package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.Store.Engine != "memory" {
		t.Fatalf("expected memory engine by default, got %q", cfg.Store.Engine)
	}
	if cfg.Scheduler.Lookahead() != 48*time.Hour || cfg.Scheduler.Grace() != 12*time.Hour {
		t.Fatalf("expected 48h/12h windows, got %v/%v", cfg.Scheduler.Lookahead(), cfg.Scheduler.Grace())
	}
	if cfg.Scheduler.Location() != time.UTC {
		t.Fatalf("expected UTC default timezone")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
store:
  engine: sqlite
  sqlite_path: /tmp/test-planter.db
scheduler:
  lookahead_hours: 24
  grace_hours: 6
  default_timezone: America/Lima
  dispatch_interval_minutes: 15
notify:
  webhook_url: https://hooks.example.com/planter
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Addr)
	}
	if cfg.Store.Engine != "sqlite" || cfg.Store.SQLitePath != "/tmp/test-planter.db" {
		t.Fatalf("expected sqlite store from file, got %+v", cfg.Store)
	}
	if cfg.Scheduler.LookaheadHours != 24 || cfg.Scheduler.GraceHours != 6 {
		t.Fatalf("expected 24/6 windows, got %+v", cfg.Scheduler)
	}
	if cfg.Scheduler.DispatchInterval() != 15*time.Minute {
		t.Fatalf("expected 15m dispatch interval, got %v", cfg.Scheduler.DispatchInterval())
	}
	if cfg.Notify.WebhookURL != "https://hooks.example.com/planter" {
		t.Fatalf("expected webhook url from file, got %q", cfg.Notify.WebhookURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
scheduler:
  lookahead_hours: 24
`)

	t.Setenv("ADDR", ":7070")
	t.Setenv("SCHEDULER_LOOKAHEAD_HOURS", "72")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("env must win over file, got addr %q", cfg.Addr)
	}
	if cfg.Scheduler.LookaheadHours != 72 {
		t.Fatalf("env must win over file, got lookahead %d", cfg.Scheduler.LookaheadHours)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not fail, got %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected defaults, got addr %q", cfg.Addr)
	}
}

func TestLoad_Validation(t *testing.T) {
	t.Run("unknown engine", func(t *testing.T) {
		t.Setenv("STORE_ENGINE", "redis")
		if _, err := Load(""); err == nil {
			t.Fatalf("expected error for unknown engine")
		}
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("STORE_ENGINE", "postgres")
		if _, err := Load(""); err == nil {
			t.Fatalf("expected error for postgres without DSN")
		}
	})

	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("DEFAULT_TIMEZONE", "Marte/Olympus")
		if _, err := Load(""); err == nil {
			t.Fatalf("expected error for invalid timezone")
		}
	})
}
