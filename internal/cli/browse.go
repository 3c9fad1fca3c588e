package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/tui"
	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/preload"
	"github.com/matzehuels/mosaic/pkg/viewport"
)

// browseCommand creates the interactive terminal browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		src        sourceFlags
		cellWidth  float64
		cellHeight float64
		noPreload  bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a photo feed as a masonry grid in the terminal",
		Long: `Browse a photo feed as a masonry grid in the terminal.

Photos come from the Pexels curated listing, a Pexels search (--query) or a
local directory (--dir). Scrolling to the bottom loads the next page. Each
terminal cell stands for --cell-width × --cell-height layout pixels.

Keys: ↑/↓ or j/k scroll, pgup/pgdn page, g/G top/end, r reload, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := src.apply(cfg); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), cfg, src.noCache, tui.Options{
				CellWidth:  cellWidth,
				CellHeight: cellHeight,
			}, !noPreload)
		},
	}

	src.register(cmd)
	cmd.Flags().Float64Var(&cellWidth, "cell-width", tui.DefaultCellWidth, "layout pixels per terminal column")
	cmd.Flags().Float64Var(&cellHeight, "cell-height", tui.DefaultCellHeight, "layout pixels per terminal row")
	cmd.Flags().BoolVar(&noPreload, "no-preload", false, "do not prefetch thumbnails")

	return cmd
}

// runBrowse wires the feed, preloader and terminal model, then runs the
// program until the user quits.
func (c *CLI) runBrowse(ctx context.Context, cfg *config.Config, noCache bool, opts tui.Options, warm bool) error {
	store := c.openCache(ctx, cfg, noCache)
	defer store.Close()

	source, err := c.newSource(cfg, store)
	if err != nil {
		return err
	}

	f := feed.New(source, feed.WithPerPage(cfg.Source.PerPage), feed.WithLogger(c.Logger))
	if warm {
		opts.Preloader = preload.New(preload.WithLogger(c.Logger))
	}
	opts.Layout = cfg.Layout.Options()
	opts.Timing = viewport.Config{
		BottomDelay: cfg.Timing.BottomDelay.Std(),
		ResizeDelay: cfg.Timing.ResizeDelay.Std(),
	}
	opts.FrameInterval = cfg.Timing.FrameInterval()
	opts.Logger = c.Logger
	opts.Title = browseTitle(cfg)

	if err := tui.Run(ctx, tui.New(ctx, f, opts)); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

func browseTitle(cfg *config.Config) string {
	switch {
	case cfg.Source.Kind == config.SourceLocal:
		return "mosaic · " + cfg.Source.Dir
	case cfg.Source.Query != "":
		return "mosaic · " + cfg.Source.Query
	default:
		return "mosaic · curated"
	}
}
