package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// windowCommand creates the window command.
func (c *CLI) windowCommand() *cobra.Command {
	var (
		scrollTop float64
		height    float64
		overscan  int
	)

	cmd := &cobra.Command{
		Use:   "window <layout.json>",
		Short: "Show which items of a layout are mounted at a scroll offset",
		Long: `Show which items of a layout are mounted at a scroll offset.

Reads a file written by 'mosaic layout' and prints the inclusive index range
and the items a surface of the given height would render.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := layout.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "load layout")
			}
			if err := errors.ValidateNonNegative("scroll-top", scrollTop); err != nil {
				return err
			}
			if err := errors.ValidateNonNegative("height", height); err != nil {
				return err
			}
			if cmd.Flags().Changed("overscan") {
				doc.Options.Overscan = overscan
			}
			return writeJSON(stdout, doc.Window(scrollTop, height))
		},
	}

	cmd.Flags().Float64Var(&scrollTop, "scroll-top", 0, "scroll offset in pixels")
	cmd.Flags().Float64Var(&height, "height", 800, "visible height in pixels")
	cmd.Flags().IntVar(&overscan, "overscan", 0, "extra rows past the viewport (default from the layout file)")

	return cmd
}
