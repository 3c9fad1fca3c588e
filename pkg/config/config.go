// Package config loads mosaic's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/mosaic/config.toml, falling back to
// ~/.config/mosaic/config.toml. Every key is optional; missing keys keep
// the defaults from [Default]. The Pexels API key is read from the
// PEXELS_API_KEY environment variable and never from the file.
//
//	[layout]
//	column_width = 250
//	gap = 15
//	item_height = 350
//	overscan = 3
//
//	[timing]
//	bottom_delay = "200ms"
//	resize_delay = "150ms"
//	frame_rate = 60
//
//	[source]
//	kind = "pexels"     # or "local"
//	per_page = 30
//	dir = "~/Pictures"  # local only
//
//	[cache]
//	backend = "file"    # file | redis | mongo | none
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/cache"
	mosaicerrors "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/integrations/pexels"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/schedule"
	"github.com/matzehuels/mosaic/pkg/viewport"
)

const (
	appName  = "mosaic"
	fileName = "config.toml"

	// EnvAPIKey names the variable holding the Pexels API key.
	EnvAPIKey = "PEXELS_API_KEY"
	// EnvBaseURL overrides source.base_url.
	EnvBaseURL = "PEXELS_BASE_URL"
)

// Source kinds.
const (
	SourcePexels = "pexels"
	SourceLocal  = "local"
)

// Config is the full configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Timing TimingConfig `toml:"timing"`
	Source SourceConfig `toml:"source"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds masonry geometry.
type LayoutConfig struct {
	ColumnWidth float64 `toml:"column_width"`
	Gap         float64 `toml:"gap"`
	ItemHeight  float64 `toml:"item_height"`
	Overscan    int     `toml:"overscan"`
}

// Options converts l to masonry options.
func (l LayoutConfig) Options() masonry.Options {
	return masonry.Options{
		ColumnWidth: l.ColumnWidth,
		Gap:         l.Gap,
		ItemHeight:  l.ItemHeight,
		Overscan:    l.Overscan,
	}
}

// TimingConfig holds scroll and resize timing.
type TimingConfig struct {
	BottomDelay Duration `toml:"bottom_delay"`
	ResizeDelay Duration `toml:"resize_delay"`
	FrameRate   int      `toml:"frame_rate"`
}

// FrameInterval returns the duration of one frame.
func (t TimingConfig) FrameInterval() time.Duration {
	if t.FrameRate <= 0 {
		return schedule.DefaultFrameInterval
	}
	return time.Second / time.Duration(t.FrameRate)
}

// SourceConfig selects where photos come from.
type SourceConfig struct {
	Kind    string `toml:"kind"`
	BaseURL string `toml:"base_url"`
	PerPage int    `toml:"per_page"`
	Dir     string `toml:"dir"`
	Query   string `toml:"query"`

	APIKey string `toml:"-"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// Backend converts c to the cache package's config. An empty Dir resolves
// to the user cache directory.
func (c CacheConfig) Backend() (cache.Config, error) {
	dir := c.Dir
	if dir == "" && (c.Backend == "" || c.Backend == cache.BackendFile) {
		d, err := CacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		dir = d
	}
	return cache.Config{
		Backend:       c.Backend,
		Dir:           expandHome(dir),
		RedisAddr:     c.RedisAddr,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
	}, nil
}

// ServerConfig configures the layout service.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			ColumnWidth: 250,
			Gap:         15,
			ItemHeight:  masonry.DefaultItemHeight,
			Overscan:    3,
		},
		Timing: TimingConfig{
			BottomDelay: Duration(viewport.DefaultBottomDelay),
			ResizeDelay: Duration(viewport.DefaultResizeDelay),
			FrameRate:   60,
		},
		Source: SourceConfig{
			Kind:    SourcePexels,
			BaseURL: pexels.DefaultBaseURL,
			PerPage: feed.DefaultPerPage,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration(24 * time.Hour),
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: Duration(30 * time.Minute),
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path over the defaults, applies the environment and validates.
// An empty path means the default location, which may be absent. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidConfig, err, "read %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, mosaicerrors.New(mosaicerrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults without touching the
// environment or validating.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, mosaicerrors.Wrap(mosaicerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, nil
}

// ApplyEnv copies PEXELS_API_KEY and PEXELS_BASE_URL into the source section.
func (c *Config) ApplyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.Source.APIKey = key
	}
	if base := os.Getenv(EnvBaseURL); base != "" {
		c.Source.BaseURL = base
	}
}

// Write encodes c as TOML. The API key is never written.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// UnmarshalText parses strings such as "200ms" or "24h".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
