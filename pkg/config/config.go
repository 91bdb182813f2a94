// Package config loads relgraph's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/relgraph/config.toml (or
// ~/.config/relgraph/config.toml) unless a path is given. A missing file
// yields [Default]; keys absent from the file keep their defaults.
//
//	[theme]
//	mode = "dark"
//
//	[labels]
//	font = "Go"
//	size = 14
//	weight = "normal"
//	threshold = 6
//
//	[layout]
//	engine = "neato"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "24h"
//
//	[cache]
//	backend = "file"   # none, file or redis
//	ttl = "1h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/layout"
	"github.com/matzehuels/relgraph/pkg/session"
)

// Config holds relgraph configuration.
type Config struct {
	Theme  ThemeConfig  `toml:"theme"`
	Labels LabelsConfig `toml:"labels"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Mode string `toml:"mode"` // "light" or "dark"
}

// LabelsConfig controls node labels.
type LabelsConfig struct {
	Font      string  `toml:"font"`
	Size      float64 `toml:"size"`
	Weight    string  `toml:"weight"`
	Color     string  `toml:"color"` // empty follows the theme
	Threshold float64 `toml:"threshold"`
}

// LayoutConfig controls automatic layout.
type LayoutConfig struct {
	Engine string `toml:"engine"`
}

// ServerConfig controls the viewer server.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
	SessionDir string   `toml:"session_dir"` // empty keeps sessions in memory
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
}

// CacheConfig controls frame caching.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a Go duration string ("1h30m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	st := draw.DefaultSettings()
	return &Config{
		Theme: ThemeConfig{Mode: string(colors.Light)},
		Labels: LabelsConfig{
			Font:      st.LabelFont,
			Size:      st.LabelSize,
			Weight:    st.LabelWeight,
			Threshold: 6,
		},
		Layout: LayoutConfig{Engine: layout.DefaultEngine},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: Duration{session.DefaultTTL},
			Width:      960,
			Height:     640,
		},
		Cache: CacheConfig{
			Backend: cache.BackendNone,
			TTL:     Duration{time.Hour},
		},
	}
}

// Dir returns the relgraph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "relgraph")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path (DefaultPath when empty) over the defaults. A missing
// default file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks enumerated values and sizes.
func (c *Config) Validate() error {
	if _, err := colors.ParseMode(c.Theme.Mode); err != nil {
		return err
	}
	if c.Labels.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "labels.size must be positive")
	}
	if c.Labels.Color != "" {
		if _, err := colors.Parse(c.Labels.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "labels.color")
		}
	}
	if _, ok := engineSet()[c.Layout.Engine]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout engine %q", c.Layout.Engine)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.Width <= 0 || c.Server.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server width and height must be positive")
	}
	return nil
}

func engineSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range layout.Engines() {
		set[e] = struct{}{}
	}
	return set
}

// ThemeMode returns the parsed theme mode.
func (c *Config) ThemeMode() colors.Mode {
	m, err := colors.ParseMode(c.Theme.Mode)
	if err != nil {
		return colors.Light
	}
	return m
}

// Settings returns the label settings. An empty label color is left for
// the scene to fill from the theme.
func (c *Config) Settings() draw.Settings {
	return draw.Settings{
		LabelSize:   c.Labels.Size,
		LabelFont:   c.Labels.Font,
		LabelWeight: c.Labels.Weight,
		LabelColor:  draw.ColorSetting{Color: c.Labels.Color},
	}
}

// CacheOptions returns the cache backend options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}
