package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CAFE_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("SUBMIT_TIMEOUT", "")
	t.Setenv("TRACKING_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.Checkout.SubmitTimeout != 5*time.Second {
		t.Fatalf("SubmitTimeout = %s", cfg.Checkout.SubmitTimeout)
	}
	if cfg.Tracking.Interval != 0 {
		t.Fatalf("tracking should be off by default, got %s", cfg.Tracking.Interval)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cafe.yaml")
	yml := `port: "9090"
db_path: /tmp/cafe-test.db
admin:
  username: manager
checkout:
  submit_timeout: 3s
tracking:
  interval: 45s
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAFE_CONFIG", path)
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("SUBMIT_TIMEOUT", "")
	t.Setenv("TRACKING_INTERVAL", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DBPath != "/tmp/cafe-test.db" || cfg.Admin.Username != "manager" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Checkout.SubmitTimeout != 3*time.Second {
		t.Fatalf("SubmitTimeout = %s", cfg.Checkout.SubmitTimeout)
	}
	if cfg.Tracking.Interval != 20*time.Second {
		t.Fatalf("env should override file, got %s", cfg.Tracking.Interval)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CAFE_CONFIG", "")
	t.Setenv("SUBMIT_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SUBMIT_TIMEOUT")
	}
}
