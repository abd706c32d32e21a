package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pinwire.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
	if cfg.MaxUploadBytes != 16<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 16<<20)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("Session.Backend = %q, want memory", cfg.Session.Backend)
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen = "127.0.0.1:9090"
storage_dir = "/var/lib/pinwire"
max_upload_bytes = 1048576

[session]
backend = "redis"
ttl_hours = 2

[session.redis]
addr = "redis:6379"
db = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != "127.0.0.1:9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.StorageDir != "/var/lib/pinwire" {
		t.Errorf("StorageDir = %q", cfg.StorageDir)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.Session.Backend != "redis" {
		t.Errorf("Backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.Redis.Addr != "redis:6379" || cfg.Session.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Session.Redis)
	}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL())
	}
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `listen = ":3000"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":3000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("Backend = %q, want memory default", cfg.Session.Backend)
	}
	if cfg.Session.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want default", cfg.Session.Redis.Addr)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[session]
backend = "dynamo"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "session backend") {
		t.Errorf("err = %v, want unknown backend error", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `listen = `)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
