package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the photo response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			bc, err := cfg.Cache.Backend()
			if err != nil {
				return fmt.Errorf("resolve cache: %w", err)
			}
			if bc.Backend == cache.BackendNone {
				printWarning("Caching is disabled")
				return nil
			}

			store, err := cache.Open(cmd.Context(), bc)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", bc.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %s cache", backendName(bc))
			printDetail("Location: %s", cacheLocation(bc))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached responses are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			bc, err := cfg.Cache.Backend()
			if err != nil {
				return fmt.Errorf("resolve cache: %w", err)
			}
			emit(cacheLocation(bc))
			return nil
		},
	}
}

func backendName(bc cache.Config) string {
	if bc.Backend == "" {
		return cache.BackendFile
	}
	return bc.Backend
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(bc cache.Config) string {
	switch backendName(bc) {
	case cache.BackendRedis:
		addr := bc.RedisAddr
		if addr == "" {
			addr = cache.DefaultRedisAddr
		}
		return "redis://" + addr
	case cache.BackendMongo:
		uri, db := bc.MongoURI, bc.MongoDatabase
		if uri == "" {
			uri = cache.DefaultMongoURI
		}
		if db == "" {
			db = cache.DefaultMongoDatabase
		}
		return uri + " (database " + db + ")"
	case cache.BackendNone:
		return "(disabled)"
	default:
		return bc.Dir
	}
}
