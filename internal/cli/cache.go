package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/config"
	"github.com/matzehuels/buttonhalo/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			switch c.Config.Cache.Backend {
			case config.BackendNone:
				p.info("Caching is disabled")
				return nil
			case config.BackendRedis:
				// Entries expire on their own TTL; flushing a shared server is out of scope.
				return errors.New(errors.ErrCodeUnsupported,
					"cache clear is not supported for the redis backend (entries expire after %s)", c.Config.Cache.TTL)
			}

			dir := c.Config.CacheDir()
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				p.info("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer fc.Close()

			count, err := fc.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			p.success("Cleared %d cached entries", count)
			p.detail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s/%s*\n", c.Config.Cache.RedisAddr, cache.DefaultRedisPrefix)
			case config.BackendNone:
				newPrinter(cmd.OutOrStdout()).info("Caching is disabled")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), c.Config.CacheDir())
			}
			return nil
		},
	}
}
