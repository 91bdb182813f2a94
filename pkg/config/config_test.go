package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[theme]
mode = "dark"

[labels]
size = 12
color = "#eeeeee"

[server]
session_ttl = "30m"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "2h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ThemeMode() != colors.Dark {
		t.Errorf("ThemeMode() = %v, want dark", cfg.ThemeMode())
	}
	if cfg.Labels.Size != 12 || cfg.Labels.Weight != "normal" {
		t.Errorf("labels = %+v", cfg.Labels)
	}
	if cfg.Server.SessionTTL.Duration != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.Server.SessionTTL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default kept", cfg.Server.Addr)
	}
	opts := cfg.CacheOptions()
	if opts.Backend != "redis" || opts.Redis.Addr != "cache:6379" || cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("cache = %+v ttl %v", opts, cfg.Cache.TTL)
	}
	if st := cfg.Settings(); st.LabelSize != 12 || st.LabelColor.Color != "#eeeeee" {
		t.Errorf("Settings() = %+v", st)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[theme\nmode = 1"},
		{"theme", "[theme]\nmode = \"sepia\""},
		{"engine", "[layout]\nengine = \"spring\""},
		{"cache", "[cache]\nbackend = \"memcached\""},
		{"duration", "[server]\nsession_ttl = \"soon\""},
		{"label size", "[labels]\nsize = 0"},
		{"label color", "[labels]\ncolor = \"nope\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Theme.Mode = "dark"
	cfg.Server.SessionTTL.Duration = 90 * time.Minute

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme.Mode != "dark" || got.Server.SessionTTL.Duration != 90*time.Minute {
		t.Errorf("round trip = %+v", got)
	}
}
