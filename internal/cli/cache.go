package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the package index response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached index responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "get cache dir")
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				c.printInfo("Cache is empty")
				return nil
			}

			cache, err := httputil.NewCache(dir, c.config.CacheTTL)
			if err != nil {
				return err
			}
			count, err := cache.Clear()
			if err != nil {
				return err
			}

			c.printSuccess("Cleared %d cached entries", count)
			c.printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "get cache dir")
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
