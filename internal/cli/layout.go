package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

// defaultViewportWidth sizes the grid when neither --columns nor
// --viewport-width is given.
const defaultViewportWidth = 1280

type layoutOpts struct {
	src           sourceFlags
	output        string
	pages         int
	columns       int
	viewportWidth float64
	columnWidth   float64
	gap           float64
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [items.json]",
		Short: "Compute masonry positions for a list of items",
		Long: `Compute masonry positions for a list of items.

Items are read from a JSON file (or stdin when the argument is "-" or
omitted). The input may be an array of {id, width, height} objects, a
Pexels page with a "photos" array, or a previous layout file. With --pages
the items are fetched from the configured source instead.

The column count comes from --columns, or is derived from --viewport-width
the same way the browser derives it from the window width.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, opts)
		},
	}

	opts.src.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "fetch this many pages from the source instead of reading items")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "column count (overrides --viewport-width)")
	cmd.Flags().Float64Var(&opts.viewportWidth, "viewport-width", defaultViewportWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.columnWidth, "column-width", 0, "column width in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.gap, "gap", -1, "gap between items in pixels (default from config)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.src.apply(cfg); err != nil {
		return err
	}

	grid := cfg.Layout.Options()
	if opts.columnWidth > 0 {
		grid.ColumnWidth = opts.columnWidth
	}
	if opts.gap >= 0 {
		grid.Gap = opts.gap
	}

	var items []masonry.Item
	if opts.pages > 0 {
		items, err = c.fetchItems(ctx, cfg, opts.pages, opts.src.noCache)
	} else {
		items, err = readItemsFile(input)
	}
	if err != nil {
		return err
	}

	columns := opts.columns
	if columns <= 0 {
		if err := errors.ValidatePositive("viewport-width", opts.viewportWidth); err != nil {
			return err
		}
		columns = masonry.ColumnCount(opts.viewportWidth, grid.ColumnWidth)
	}

	out := layout.Compute(items, columns, grid)
	if opts.output == "" {
		return layout.Write(out, stdout)
	}
	if err := layout.WriteFile(out, opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Layout complete")
	printFile(opts.output)
	printLayoutSummary(out)
	printNewline()
	printNextStep("Visible window", "mosaic window "+opts.output+" --scroll-top 0 --height 800")
	return nil
}

// fetchItems loads up to pages pages from the configured source.
func (c *CLI) fetchItems(ctx context.Context, cfg *config.Config, pages int, noCache bool) ([]masonry.Item, error) {
	store := c.openCache(ctx, cfg, noCache)
	defer store.Close()

	source, err := c.newSource(cfg, store)
	if err != nil {
		return nil, err
	}
	f := feed.New(source, feed.WithPerPage(cfg.Source.PerPage), feed.WithLogger(c.Logger))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %d pages...", pages))
	spinner.Start()
	prog := newProgress(loggerFromContext(ctx))

	for i := 0; i < pages && !f.Done(); i++ {
		change, err := f.LoadNext(ctx)
		if err != nil {
			spinner.StopWithError("Fetch failed")
			return nil, err
		}
		prog.step("page fetched", "page", f.Page(), "photos", change.Count)
		spinner.SetMessage(fmt.Sprintf("Fetched page %d of %d (%d photos)", f.Page(), pages, f.Len()))
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched %d photos", f.Len()))
	return f.Items(), nil
}

// readItemsFile reads items from path, or stdin for "-".
func readItemsFile(path string) ([]masonry.Item, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	items, err := layout.DecodeItems(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return items, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
