package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name    string
		env     string
		envVal  string
		dirFunc func() (string, error)
		want    string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/custom-cache", cacheDir, filepath.Join("/tmp/custom-cache", appName)},
		{"config default", "XDG_CONFIG_HOME", "", configDir, filepath.Join(home, ".config", appName)},
		{"config xdg", "XDG_CONFIG_HOME", "/tmp/custom-config", configDir, filepath.Join("/tmp/custom-config", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.envVal)
			got, err := tt.dirFunc()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutCacheDirFromConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	c := &CLI{Logger: newLogger(os.Stderr, LogInfo)}

	c.Config = &Config{Cache: CacheConfig{Backend: backendFile}}
	if got, _ := c.layoutCacheDir(); got != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("default layoutCacheDir = %q", got)
	}

	c.Config.Cache.Dir = "/srv/arc-cache"
	if got, _ := c.layoutCacheDir(); got != "/srv/arc-cache" {
		t.Errorf("configured layoutCacheDir = %q", got)
	}
}
