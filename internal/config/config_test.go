package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/icyminglun/routescope/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func minimalConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Name = "routescope"
	cfg.Database.User = "routescope"
	return cfg
}

func TestFinalizeDefaults(t *testing.T) {
	cfg := minimalConfig()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Server.Addr() != "localhost:8080" {
		t.Errorf("Addr() = %q, want localhost:8080", cfg.Server.Addr())
	}
	if cfg.Server.MaxRequestBodyBytes() != 1000000 {
		t.Errorf("MaxRequestBodyBytes() = %d, want 1MB", cfg.Server.MaxRequestBodyBytes())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.Sessions.TTLDuration() != 30*time.Minute {
		t.Errorf("session TTL = %v, want 30m", cfg.Sessions.TTLDuration())
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_MAX_REQUEST_BODY", "5MB")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("SESSION_TTL", "2h")

	cfg := minimalConfig()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.MaxRequestBodyBytes() != 5000000 {
		t.Errorf("MaxRequestBodyBytes() = %d, want 5MB", cfg.Server.MaxRequestBodyBytes())
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Sessions.TTLDuration() != 2*time.Hour {
		t.Errorf("session TTL = %v, want 2h", cfg.Sessions.TTLDuration())
	}
}

func TestFinalizeInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad shutdown timeout", func(c *config.Config) { c.ShutdownTimeout = "soon" }},
		{"bad read timeout", func(c *config.Config) { c.Server.ReadTimeout = "fast" }},
		{"bad request body size", func(c *config.Config) { c.Server.MaxRequestBody = "plenty" }},
		{"bad session ttl", func(c *config.Config) { c.Sessions.TTL = "forever" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			tt.mutate(cfg)
			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
version = "1.0.0"

[server]
port = 8080

[logging]
level = "info"
`)
	writeFile(t, dir, "config.test.toml", `
[server]
port = 9999

[logging]
level = "debug"
`)

	t.Chdir(dir)
	t.Setenv("SERVICE_ENV", "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Version = %q, want base value", cfg.Version)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want overlay value 9999", cfg.Server.Port)
	}
	if string(cfg.Logging.Level) != "debug" {
		t.Errorf("Level = %q, want overlay value debug", cfg.Logging.Level)
	}
}

func TestLoadMissingOverlayIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `version = "1.0.0"`)

	t.Chdir(dir)
	t.Setenv("SERVICE_ENV", "nonexistent")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", cfg.Version)
	}
}

func TestMerge(t *testing.T) {
	base := &config.Config{Version: "1.0.0", ShutdownTimeout: "30s"}
	base.Server.Host = "localhost"
	base.Server.Port = 8080

	overlay := &config.Config{}
	overlay.Server.Port = 9090

	base.Merge(overlay)

	if base.Version != "1.0.0" {
		t.Errorf("Version = %q, zero overlay field must not clear it", base.Version)
	}
	if base.Server.Host != "localhost" {
		t.Errorf("Host = %q, zero overlay field must not clear it", base.Server.Host)
	}
	if base.Server.Port != 9090 {
		t.Errorf("Port = %d, want overlay value", base.Server.Port)
	}
}
