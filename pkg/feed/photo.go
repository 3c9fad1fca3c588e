// Package feed turns a paged photo source into a growing masonry item list.
//
// A [Source] serves numbered pages. A [Feed] requests them one at a time,
// appends each page to what it already holds and reports the
// [masonry.Change] the load produced, so the layout only places the new
// suffix:
//
//	f := feed.New(src, feed.WithPerPage(30))
//	change, err := f.LoadNext(ctx)
//	snap := grid.SetItems(f.Items(), change)
//
// A failed load leaves the accumulated photos untouched and reports
// Appended(0). Reset discards everything and reports Replaced.
package feed

import (
	"context"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// Src holds the size variants a photo is published in.
type Src struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Photo is one entry of a source listing. Width and Height are the
// intrinsic pixel dimensions used for aspect-ratio scaling.
type Photo struct {
	ID              int    `json:"id"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	URL             string `json:"url"`
	Alt             string `json:"alt"`
	AvgColor        string `json:"avg_color"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
	PhotographerID  int    `json:"photographer_id"`
	Liked           bool   `json:"liked"`
	Src             Src    `json:"src"`
}

// Item returns the masonry view of p.
func (p Photo) Item() masonry.Item {
	return masonry.Item{ID: p.ID, Width: float64(p.Width), Height: float64(p.Height)}
}

// Page is one page of a listing. Next is the number of the following page,
// or 0 when the listing is exhausted.
type Page struct {
	Number  int     `json:"page"`
	PerPage int     `json:"per_page"`
	Next    int     `json:"next_page,omitempty"`
	Total   int     `json:"total_results,omitempty"`
	Items   []Photo `json:"photos"`
}

// HasNext reports whether another page follows.
func (p *Page) HasNext() bool { return p != nil && p.Next > 0 }

// Source serves numbered pages starting at 1.
type Source interface {
	Page(ctx context.Context, number, perPage int) (*Page, error)
}

// Namer is implemented by sources that report a name to logs and hooks.
type Namer interface {
	Name() string
}

// Items converts photos to masonry items, index aligned.
func Items(photos []Photo) []masonry.Item {
	items := make([]masonry.Item, len(photos))
	for i, p := range photos {
		items[i] = p.Item()
	}
	return items
}

// Paginate cuts page number out of photos. Pages past the end are empty.
func Paginate(photos []Photo, number, perPage int) *Page {
	number = max(number, 1)
	perPage = max(perPage, 1)

	page := &Page{Number: number, PerPage: perPage, Total: len(photos)}
	start := (number - 1) * perPage
	if start >= len(photos) {
		return page
	}
	end := min(start+perPage, len(photos))
	page.Items = photos[start:end:end]
	if end < len(photos) {
		page.Next = number + 1
	}
	return page
}

// SliceSource serves a fixed photo list.
type SliceSource []Photo

// Name returns "static".
func (SliceSource) Name() string { return "static" }

// Page implements Source.
func (s SliceSource) Page(ctx context.Context, number, perPage int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Paginate(s, number, perPage), nil
}
