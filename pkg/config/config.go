// Package config loads user settings for the buttonhalo CLI and server.
//
// Settings live in config.toml under the XDG config directory
// (~/.config/buttonhalo/config.toml on Linux). Every key is optional; a
// missing file or key falls back to [Default]. Command-line flags override
// the file.
//
//	[display]
//	width = 2560
//	height = 1440
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/buttonhalo/pkg/errors"
)

// AppName names the XDG subdirectories.
const AppName = "buttonhalo"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded config.toml.
type Config struct {
	Display  Display  `toml:"display"`
	Controls Controls `toml:"controls"`
	Cache    Cache    `toml:"cache"`
	Serve    Serve    `toml:"serve"`
	Log      Log      `toml:"log"`
}

// Display is the default display bound for scenarios created by the CLI.
type Display struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Controls is the default control set.
type Controls struct {
	Count int `toml:"count"`
	Size  int `toml:"size"`
}

// Cache selects and tunes the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
	Dir       string `toml:"dir"`
}

// Serve configures the HTTP server.
type Serve struct {
	Addr string `toml:"addr"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Display:  Display{Width: 1920, Height: 1080},
		Controls: Controls{Count: 8, Size: 24},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       "24h",
			RedisAddr: "localhost:6379",
		},
		Serve: Serve{Addr: ":8080"},
		Log:   Log{Level: "info"},
	}
}

// Path returns the location of config.toml.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// DefaultCacheDir returns the file cache directory under the XDG cache home.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and backend settings.
func (c Config) Validate() error {
	code := errors.ErrCodeInvalidConfig

	if err := errors.ValidateRange(code, "display.width", c.Display.Width, 1, 65536); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "display.height", c.Display.Height, 1, 65536); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "controls.count", c.Controls.Count, 1, 256); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "controls.size", c.Controls.Size, 1, 512); err != nil {
		return err
	}

	backends := []string{BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(code, "cache.backend %q is not one of file, redis, none", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Cache.Backend == BackendRedis {
		if err := errors.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return err
		}
	}
	if err := errors.ValidateAddr(c.Serve.Addr); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses cache.ttl. An empty value means no expiry.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl %q is not a valid duration", c.Cache.TTL)
	}
	return d, nil
}

// CacheDir returns cache.dir, or the XDG default when unset.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return DefaultCacheDir()
}

// LogLevel parses log.level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return lvl, nil
}
