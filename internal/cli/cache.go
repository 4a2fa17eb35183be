package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/internal/config"
	"github.com/matzehuels/pseudoloc/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the localized document cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached documents from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := cfg.CacheOptions()
			if opts.Backend == cache.BackendNone {
				printInfo(out, "Caching is disabled")
				return nil
			}

			store, err := cache.Open(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", opts.Backend, err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning(out, "The %s cache cannot be cleared", opts.Backend)
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo(out, "Cache is empty")
			} else {
				printSuccess(out, "Cleared %d cached entries", count)
			}
			printDetail(out, "Location: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached documents are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation describes where the configured backend keeps its entries.
func cacheLocation(cfg *config.Config) string {
	opts := cfg.CacheOptions()
	switch opts.Backend {
	case cache.BackendRedis:
		addr := opts.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return fmt.Sprintf("redis://%s/%d", addr, opts.RedisDB)
	case cache.BackendMongo:
		uri := opts.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		db, coll := opts.MongoDatabase, opts.MongoCollection
		if db == "" {
			db = cache.DefaultMongoDatabase
		}
		if coll == "" {
			coll = cache.DefaultMongoCollection
		}
		return fmt.Sprintf("%s (%s.%s)", uri, db, coll)
	case cache.BackendNone:
		return "(disabled)"
	default:
		return opts.Dir
	}
}
