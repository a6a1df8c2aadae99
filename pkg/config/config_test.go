package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/highway/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	// An explicit path must exist
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load(explicit missing path) should fail")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "highway", "config.toml")
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte(`
[check]
max_depth = 64

[cache]
backend = "redis"
ttl = "30m"
redis_addr = "cache:6379"

[history]
backend = "mongo"
`), 0644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Check.MaxDepth != 64 {
		t.Errorf("MaxDepth = %d", cfg.Check.MaxDepth)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 30*time.Minute {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	if cfg.History.Backend != "mongo" || cfg.History.Database != "highway" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errs.Code
	}{
		{"syntax", "[check\nmax_depth = 1", errs.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"", errs.ErrCodeInvalidFormat},
		{"unknown key", "[check]\nmax_dept = 1", errs.ErrCodeInvalidInput},
		{"zero depth", "[check]\nmax_depth = 0", errs.ErrCodeInvalidInput},
		{"cache backend", "[cache]\nbackend = \"memcached\"", errs.ErrCodeInvalidInput},
		{"history backend", "[history]\nbackend = \"sqlite\"", errs.ErrCodeInvalidInput},
		{"empty addr", "[server]\naddr = \"\"", errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Decode([]byte(tt.data), &cfg)
			if !errs.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	want := Default()
	want.Check.MaxDepth = 99
	want.Cache.TTL = Duration{2 * time.Hour}

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "highway", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
