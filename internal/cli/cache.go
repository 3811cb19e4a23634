package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		Long: `Remove all cached layouts from the configured backend.

The file backend removes every entry under the cache directory. The redis
backend deletes only keys under redis.prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch backend := c.config().Cache.Backend; backend {
			case backendFile:
				return c.clearFileCache()
			case backendRedis:
				return c.clearRedisCache(cmd.Context())
			default:
				printInfo("Cache backend is %s, nothing to clear", backend)
				return nil
			}
		},
	}
}

func (c *CLI) clearFileCache() error {
	dir, err := c.layoutCacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	count, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %s", plural(count, "cached layout"))
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func (c *CLI) clearRedisCache(ctx context.Context) error {
	cfg := c.config()
	rc, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("connect redis cache: %w", err)
	}
	defer rc.Close()

	prefix := cache.NewScopedKeyer(nil, cfg.Redis.Prefix).Prefix()
	count, err := rc.Clear(ctx, prefix)
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}
	printSuccess("Cleared %s", plural(count, "cached layout"))
	printDetail("Prefix: %s", prefix)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.layoutCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
