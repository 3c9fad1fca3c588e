package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
)

// photoCommand creates the photo details command.
func (c *CLI) photoCommand() *cobra.Command {
	var (
		refresh bool
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "photo <id>",
		Short: "Show a photo's details",
		Long: `Show a photo's details.

With the Pexels source the photo is looked up by its Pexels ID. With a local
directory (--dir) the ID is the photo's position in the sorted listing,
starting at 1.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: noArgCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "photo ID must be a number, got %q", args[0])
			}
			if err := errors.ValidatePhotoID(id); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.Source.Kind = config.SourceLocal
				cfg.Source.Dir = dir
			}

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Fetching photo %d...", id))
			spinner.Start()
			photo, err := c.lookupPhoto(cmd.Context(), cfg, id, refresh)
			if err != nil {
				spinner.StopWithError("Lookup failed")
				return err
			}
			spinner.Stop()

			printPhoto(photo)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")
	cmd.Flags().StringVar(&dir, "dir", "", "look the ID up in a local image directory")
	_ = cmd.RegisterFlagCompletionFunc("dir", completeDirs)

	return cmd
}

func (c *CLI) lookupPhoto(ctx context.Context, cfg *config.Config, id int, refresh bool) (*feed.Photo, error) {
	store := c.openCache(ctx, cfg, false)
	defer store.Close()

	if cfg.Source.Kind != config.SourceLocal {
		client, err := c.pexelsClient(cfg, store)
		if err != nil {
			return nil, err
		}
		return client.Photo(ctx, id, refresh)
	}

	// Local IDs are listing positions, so page id of size one holds the photo.
	source, err := c.newSource(cfg, store)
	if err != nil {
		return nil, err
	}
	page, err := source.Page(ctx, id, 1)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, errors.New(errors.ErrCodePhotoNotFound, "no photo %d in %s", id, cfg.Source.Dir)
	}
	return &page.Items[0], nil
}

func printPhoto(p *feed.Photo) {
	printSuccess("Photo %s", StyleNumber.Render(strconv.Itoa(p.ID)))
	if p.Alt != "" {
		printKeyValue("Title", p.Alt)
	}
	printKeyValue("Size", fmt.Sprintf("%d × %d", p.Width, p.Height))
	if p.Photographer != "" {
		printKeyValue("By", p.Photographer)
	}
	if p.PhotographerURL != "" {
		printKeyValue("Profile", StyleLink.Render(p.PhotographerURL))
	}
	if p.AvgColor != "" {
		printKeyValue("Color", p.AvgColor)
	}
	if p.URL != "" {
		printKeyValue("Page", StyleLink.Render(p.URL))
	}
	if p.Src.Original != "" {
		printKeyValue("Original", StyleLink.Render(p.Src.Original))
	}
	if p.Liked {
		printDetail("liked")
	}
}
