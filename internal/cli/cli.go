// Package cli implements the arcstrata command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/pkg/buildinfo"
	"github.com/matzehuels/arcstrata/pkg/cache"
	"github.com/matzehuels/arcstrata/pkg/observability"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "arcstrata"
)

// Log levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableEventLog registers hooks that log every pipeline, cache and server
// event at debug level.
func (c *CLI) EnableEventLog() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "arcstrata lays out dependency treebanks as arc diagrams",
		Long: `arcstrata computes arc-diagram layouts for dependency treebanks.

Every edge of a sentence becomes an arc over the token line. Arcs are
stacked into strata so that nested arcs sit inside each other, and an arc
that would cross another is moved below the tokens. Anchor offsets fan out
arcs that share a token.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				c.EnableEventLog()
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/arcstrata/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.keyer(), c.Logger), nil
}

// keyer scopes keys under redis.prefix when layouts go to Redis. File
// caches are private to one user and keep unscoped keys.
func (c *CLI) keyer() cache.Keyer {
	cfg := c.config()
	if cfg.Cache.Backend != backendRedis {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, cfg.Redis.Prefix)
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config()
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.layoutCacheDir()
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// alternatives resolves -a/--alternatives against render.alternatives. A
// flag given on the command line wins in either direction.
func (c *CLI) alternatives(cmd *cobra.Command, flag bool) bool {
	if f := cmd.Flags().Lookup("alternatives"); f != nil && f.Changed {
		return flag
	}
	return c.config().Render.Alternatives
}

// pipelineOptions merges config values with per-command flags.
func (c *CLI) pipelineOptions(alternatives, refresh bool, concurrency int) pipeline.Options {
	cfg := c.config()
	opts := pipeline.Options{
		Alternatives: alternatives,
		Refresh:      refresh,
		Concurrency:  cfg.Batch.Concurrency,
		TTL:          cfg.Cache.TTL,
		Logger:       c.Logger,
	}
	if concurrency > 0 {
		opts.Concurrency = concurrency
	}
	opts.SetDefaults()
	return opts
}

// config returns the loaded config, or defaults when commands run without
// the root command's pre-run (as in tests).
func (c *CLI) config() *Config {
	if c.Config == nil {
		cfg, err := loadConfig(c.configPath)
		if err != nil {
			c.Logger.Warn("invalid configuration, using defaults", "err", err)
			cfg = &Config{Cache: CacheConfig{Backend: backendFile, TTL: pipeline.DefaultTTL}}
		}
		c.Config = cfg
	}
	return c.Config
}

// =============================================================================
// Paths
// =============================================================================

// layoutCacheDir returns cache.dir from the config, or the XDG default.
func (c *CLI) layoutCacheDir() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/arcstrata/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/arcstrata/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
