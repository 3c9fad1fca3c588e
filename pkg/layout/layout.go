// Package layout defines the layout document: a placed item list written by
// one tool and read back by another.
//
// A [Document] records the grid options, the column count and every item's
// position, so a consumer can compute visible windows without re-running the
// placement:
//
//	doc := layout.Compute(items, 3, masonry.Options{ColumnWidth: 236})
//	_ = layout.WriteFile(doc, "layout.json")
//
//	doc, _ = layout.ReadFile("layout.json")
//	w := doc.Window(1200, 800)
package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

// Document is the serialized form of a computed grid.
type Document struct {
	Columns       int                `json:"columns"`
	Options       masonry.Options    `json:"options"`
	Items         []masonry.Item     `json:"items"`
	Positions     []masonry.Position `json:"positions"`
	LongestColumn float64            `json:"longest_column"`
	ContentWidth  float64            `json:"content_width"`
}

// WindowResult is the mounted slice of a document at one scroll offset.
type WindowResult struct {
	Range         masonry.Range     `json:"range"`
	Items         []masonry.Visible `json:"items"`
	ContentHeight float64           `json:"content_height"`
}

// Compute places items in the given number of columns.
func Compute(items []masonry.Item, columns int, opts masonry.Options) Document {
	grid := masonry.NewGrid(columns, opts)
	snap := grid.SetItems(items, masonry.Appended(len(items)))
	return Document{
		Columns:       grid.Columns(),
		Options:       grid.Options(),
		Items:         items,
		Positions:     snap.Positions,
		LongestColumn: snap.LongestColumn,
		ContentWidth:  grid.ContentWidth(),
	}
}

// Window returns the items a surface of the given height mounts at
// scrollTop. Items is never nil.
func (d Document) Window(scrollTop, height float64) WindowResult {
	opts := d.Options.WithDefaults()
	r := masonry.ComputeRange(d.Positions, len(d.Items), masonry.Window{
		ScrollOffset:    scrollTop,
		ContainerHeight: height,
		Columns:         d.Columns,
		ItemHeight:      opts.ItemHeight,
		Overscan:        opts.Overscan,
	})
	visible := masonry.VisibleItems(d.Items, d.Positions, r)
	if visible == nil {
		visible = []masonry.Visible{}
	}
	return WindowResult{Range: r, Items: visible, ContentHeight: d.LongestColumn}
}

// ColumnHeights returns each column's running height, gap included, rebuilt
// from the positions.
func (d Document) ColumnHeights() []float64 {
	heights := make([]float64, max(d.Columns, 1))
	opts := d.Options.WithDefaults()
	stride := opts.ColumnWidth + opts.Gap
	for _, p := range d.Positions {
		col := 0
		if stride > 0 {
			col = min(int(math.Round(p.Left/stride)), len(heights)-1)
		}
		heights[col] = max(heights[col], p.Bottom()+opts.Gap)
	}
	return heights
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Document to pretty-printed JSON bytes.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Document.
// Every item must have a position.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if d.Columns < 1 {
		return Document{}, fmt.Errorf("layout must have at least one column")
	}
	if len(d.Positions) != len(d.Items) {
		return Document{}, fmt.Errorf("layout has %d items but %d positions", len(d.Items), len(d.Positions))
	}
	return d, nil
}

// Write encodes d to w with a trailing newline.
func Write(d Document, w io.Writer) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile writes a Document to a JSON file.
func WriteFile(d Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadFile reads a Document from a JSON file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// ValidateItems checks that every item has a positive intrinsic width and
// height. Placement itself assumes valid items.
func ValidateItems(items []masonry.Item) error {
	for i, it := range items {
		if err := errors.ValidatePositive(fmt.Sprintf("items[%d].width", i), it.Width); err != nil {
			return err
		}
		if err := errors.ValidatePositive(fmt.Sprintf("items[%d].height", i), it.Height); err != nil {
			return err
		}
	}
	return nil
}

// DecodeItems accepts a bare item array, or an object carrying "items"
// (a layout document) or "photos" (a source page). Items without a positive
// size are rejected with INVALID_INPUT.
func DecodeItems(data []byte) ([]masonry.Item, error) {
	items, err := decodeItems(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeItems(data []byte) ([]masonry.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	if data[0] == '[' {
		var items []masonry.Item
		err := json.Unmarshal(data, &items)
		return items, err
	}

	var doc struct {
		Items  []masonry.Item `json:"items"`
		Photos []feed.Photo   `json:"photos"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Items != nil {
		return doc.Items, nil
	}
	if doc.Photos != nil {
		return feed.Items(doc.Photos), nil
	}
	return nil, fmt.Errorf(`expected an array or an object with "items" or "photos"`)
}
