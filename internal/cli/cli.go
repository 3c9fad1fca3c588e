// Package cli implements the mosaic command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/feed/local"
	"github.com/matzehuels/mosaic/pkg/integrations/pexels"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "mosaic"

// Log levels exported for use in main.go.
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

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	buildinfo.Resolve()
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mosaic lays out photo feeds as masonry grids",
		Long:         `Mosaic packs variable-height photos into columns, shows only what is on screen and loads more as you scroll. It runs as a terminal browser, a one-shot layout tool, or an HTTP layout service.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mosaic/config.toml)")

	root.AddCommand(c.browseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.windowCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.photoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// openCache opens the configured cache backend. A backend that cannot be
// reached degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	bc, err := cfg.Cache.Backend()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	store, err := cache.Open(ctx, bc)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", bc.Backend, "error", err)
		return cache.NewNullCache()
	}
	return store
}

// pexelsClient builds a Pexels client from the source config.
func (c *CLI) pexelsClient(cfg *config.Config, store cache.Cache) (*pexels.Client, error) {
	return pexels.NewClient(pexels.Options{
		APIKey:   cfg.Source.APIKey,
		BaseURL:  cfg.Source.BaseURL,
		Cache:    store,
		CacheTTL: cfg.Cache.TTL.Std(),
	})
}

// newSource builds the photo source named by the config.
func (c *CLI) newSource(cfg *config.Config, store cache.Cache) (feed.Source, error) {
	if cfg.Source.Kind == config.SourceLocal {
		src, err := local.New(cfg.Source.Dir, c.Logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	client, err := c.pexelsClient(cfg, store)
	if err != nil {
		return nil, err
	}
	return client.Source(cfg.Source.Query), nil
}

// sourceFlags are the source overrides shared by browse and layout.
type sourceFlags struct {
	query   string
	dir     string
	perPage int
	noCache bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "search query (default: curated photos)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "browse a local image directory instead of Pexels")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "photos per page (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable response caching")
	_ = cmd.RegisterFlagCompletionFunc("dir", completeDirs)
}

// apply overrides cfg with the flags that were set and revalidates.
func (f *sourceFlags) apply(cfg *config.Config) error {
	if f.query != "" {
		cfg.Source.Query = f.query
	}
	if f.dir != "" {
		cfg.Source.Kind = config.SourceLocal
		cfg.Source.Dir = f.dir
	}
	if f.perPage > 0 {
		cfg.Source.PerPage = f.perPage
	}
	return cfg.Validate()
}
