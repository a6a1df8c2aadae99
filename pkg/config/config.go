// Package config loads the highway configuration file.
//
// The file is TOML and optional. A missing file yields [Default]; keys left
// out of a file keep their default values.
//
//	[check]
//	max_depth = 4096
//
//	[cache]
//	backend = "file"      # file | redis | none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	prefix = ""           # key prefix when several deployments share redis
//
//	[history]
//	backend = "file"      # file | mongo | none
//	mongo_uri = "mongodb://localhost:27017"
//	database = "highway"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/highway/pkg/cache"
	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/planarity"
)

// Config is the full configuration.
type Config struct {
	Check   Check   `toml:"check"`
	Cache   Cache   `toml:"cache"`
	History History `toml:"history"`
	Server  Server  `toml:"server"`
}

// Check configures the planarity check.
type Check struct {
	MaxDepth int `toml:"max_depth"`
}

// Cache configures the verdict cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	Dir       string   `toml:"dir"`
	Prefix    string   `toml:"prefix"`
}

// History configures report storage.
type History struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
	Dir      string `toml:"dir"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration that decodes from strings like "168h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var (
	cacheBackends   = []string{"file", "redis", "none"}
	historyBackends = []string{"file", "mongo", "none"}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Check: Check{MaxDepth: planarity.DefaultMaxDepth},
		Cache: Cache{
			Backend:   "file",
			TTL:       Duration{cache.DefaultTTL},
			RedisAddr: "localhost:6379",
		},
		History: History{
			Backend:  "file",
			MongoURI: "mongodb://localhost:27017",
			Database: history.DefaultDatabase,
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath]; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode parses TOML data into cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks backend names and numeric bounds.
func (c Config) Validate() error {
	if c.Check.MaxDepth <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "check.max_depth must be positive, got %d", c.Check.MaxDepth)
	}
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if !slices.Contains(historyBackends, c.History.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "unknown history backend %q", c.History.Backend)
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "server.addr must not be empty")
	}
	return nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg as TOML to w.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// DefaultPath returns $XDG_CONFIG_HOME/highway/config.toml, falling back to
// ~/.config/highway/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "highway", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "highway", "config.toml")
	}
	return filepath.Join(os.TempDir(), "highway", "config.toml")
}
