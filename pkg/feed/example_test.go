package feed_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

func ExampleFeed() {
	src := feed.SliceSource{
		{ID: 1, Width: 400, Height: 600},
		{ID: 2, Width: 400, Height: 200},
		{ID: 3, Width: 400, Height: 400},
	}
	f := feed.New(src, feed.WithPerPage(2))
	grid := masonry.NewGrid(2, masonry.Options{ColumnWidth: 200, Gap: 10, ItemHeight: 300})

	ctx := context.Background()
	for !f.Done() {
		change, err := f.LoadNext(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		snap := grid.SetItems(f.Items(), change)
		fmt.Println(change, "placed:", snap.Placed, "longest:", snap.LongestColumn)
	}
	// Output:
	// appended(2) placed: 2 longest: 310
	// appended(1) placed: 3 longest: 320
}
