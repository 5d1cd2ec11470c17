// Package config loads application configuration for the serve command
// and the render pipeline.
//
// Configuration lives in a TOML file; command-line flags override
// individual values. All fields have working defaults, so a missing file
// is not an error unless a path was given explicitly.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// MaxUploadMB bounds the accepted workbook size.
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the cache directory for the file backend. Empty uses the
	// user cache dir.
	Dir string `toml:"dir"`
	// RedisAddr is host:port for the redis backend.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	// TTLMinutes bounds artifact lifetime. Zero means the default.
	TTLMinutes int `toml:"ttl_minutes"`
}

// RenderConfig configures the renderers.
type RenderConfig struct {
	// Title is the page/diagram heading.
	Title string `toml:"title"`
	// FontName is the diagram font, resolved here once and passed into
	// the renderer; nothing keeps global font state.
	FontName string `toml:"font_name"`
	// PNGScale is the raster zoom factor for PNG export.
	PNGScale float64 `toml:"png_scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: 20,
		},
		Cache: CacheConfig{
			Backend:    "file",
			TTLMinutes: 10,
		},
		Render: RenderConfig{
			PNGScale: 2.0,
		},
	}
}

// LoadFile reads a TOML config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %s not found", path)
		}
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// TTL returns the artifact TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}
