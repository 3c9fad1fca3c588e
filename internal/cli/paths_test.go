package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/cache"
)

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		name string
		cfg  cache.Config
		want string
	}{
		{"file", cache.Config{Backend: cache.BackendFile, Dir: "/tmp/mosaic"}, "/tmp/mosaic"},
		{"empty backend is file", cache.Config{Dir: "/tmp/x"}, "/tmp/x"},
		{"redis default", cache.Config{Backend: cache.BackendRedis}, "redis://localhost:6379"},
		{"redis addr", cache.Config{Backend: cache.BackendRedis, RedisAddr: "cache:6380"}, "redis://cache:6380"},
		{"mongo", cache.Config{Backend: cache.BackendMongo, MongoURI: "mongodb://db:27017", MongoDatabase: "photos"}, "mongodb://db:27017 (database photos)"},
		{"mongo defaults", cache.Config{Backend: cache.BackendMongo}, "mongodb://localhost:27017 (database mosaic)"},
		{"none", cache.Config{Backend: cache.BackendNone}, "(disabled)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheLocation(tt.cfg); got != tt.want {
				t.Errorf("cacheLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	c := New(io.Discard, LogInfo)
	got, err := c.resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if got != want {
		t.Errorf("resolveConfigPath() = %q, want %q", got, want)
	}

	c.configPath = "/etc/mosaic.toml"
	if got, _ := c.resolveConfigPath(); got != "/etc/mosaic.toml" {
		t.Errorf("explicit --config should win, got %q", got)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("writeDefaultConfig() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "column_width") {
		t.Errorf("config file missing layout section:\n%s", data)
	}

	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("second write without force should fail")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("forced write error: %v", err)
	}
}
