package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Render.PNGScale != 2.0 {
		t.Errorf("PNGScale = %v", cfg.Render.PNGScale)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revtree.toml")
	src := `
[server]
addr = ":9000"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl_minutes = 30

[render]
title = "改訂履歴"
font_name = "Noto Sans CJK JP"
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MaxUploadMB != 20 {
		t.Errorf("MaxUploadMB = %d, want default 20", cfg.Server.MaxUploadMB)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL() != 30*time.Minute {
		t.Errorf("TTL = %v", cfg.Cache.TTL())
	}
	if cfg.Render.FontName != "Noto Sans CJK JP" {
		t.Errorf("FontName = %q", cfg.Render.FontName)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFileUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revtree.toml")
	if err := os.WriteFile(path, []byte("[server]\nadress = \":9\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestTTLDefault(t *testing.T) {
	c := CacheConfig{}
	if c.TTL() != 10*time.Minute {
		t.Errorf("TTL = %v, want 10m", c.TTL())
	}
}
