package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// envPrefix prefixes every environment override, e.g. ARCSTRATA_CACHE_BACKEND.
const envPrefix = "ARCSTRATA_"

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the merged CLI configuration.
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults
//  2. User config: $XDG_CONFIG_HOME/arcstrata/config.yaml (or config.json)
//  3. Environment: ARCSTRATA_CACHE_BACKEND, ARCSTRATA_REDIS_URL, ...
//  4. Command-line flags
type Config struct {
	Cache  CacheConfig  `koanf:"cache"`
	Redis  RedisConfig  `koanf:"redis"`
	Batch  BatchConfig  `koanf:"batch"`
	Server ServerConfig `koanf:"server"`
	Render RenderConfig `koanf:"render"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend string        `koanf:"backend"`
	Dir     string        `koanf:"dir"`
	TTL     time.Duration `koanf:"ttl"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	URL string `koanf:"url"`
	// Prefix scopes every key so deployments can share a database.
	Prefix string `koanf:"prefix"`
}

// BatchConfig configures multi-sentence layout runs.
type BatchConfig struct {
	Concurrency int `koanf:"concurrency"`
}

// ServerConfig configures `arcstrata serve`.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// RenderConfig holds rendering preferences.
type RenderConfig struct {
	Alternatives bool `koanf:"alternatives"`
	Labels       bool `koanf:"labels"`
}

func configDefaults() map[string]any {
	return map[string]any{
		"cache.backend":       backendFile,
		"cache.dir":           "",
		"cache.ttl":           pipeline.DefaultTTL,
		"redis.url":           "redis://localhost:6379/0",
		"redis.prefix":        "arcstrata",
		"batch.concurrency":   pipeline.DefaultConcurrency,
		"server.addr":         ":8080",
		"render.alternatives": false,
		"render.labels":       true,
	}
}

// loadConfig builds the configuration. An empty path loads the user
// config file if one exists; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	for key, value := range configDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path == "" {
		path = userConfigPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" && fileExists(path) {
		if err := loadConfigFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("config file %s: unsupported extension (use .yaml or .json)", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// envKey maps ARCSTRATA_CACHE_BACKEND to cache.backend.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("cache.backend: %q is not one of file, redis, none", c.Cache.Backend)
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency: must be positive, got %d", c.Batch.Concurrency)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl: must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// userConfigPath returns the first existing user config file, or "" when
// there is none.
func userConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
