package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

var sampleItems = []masonry.Item{
	{ID: 1, Width: 200, Height: 300},
	{ID: 2, Width: 200, Height: 400},
	{ID: 3, Width: 200, Height: 200},
	{ID: 4, Width: 200, Height: 350},
	{ID: 5, Width: 200, Height: 250},
}

func TestLayoutCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "items.json")
	data, _ := json.Marshal(sampleItems)
	if err := os.WriteFile(input, data, 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "layout.json")
	summary := captureStdout(t)

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "layout", input, "-o", output,
		"--columns", "2", "--column-width", "200", "--gap", "10"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := layout.Unmarshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Columns != 2 || len(doc.Positions) != 5 || doc.LongestColumn != 780 {
		t.Errorf("layout file = %+v", doc)
	}
	for _, want := range []string{"Layout complete", "5 items", "2 columns", "410×780px", "balance"} {
		if !strings.Contains(summary.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, summary.String())
		}
	}

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "window", output, "--height=-1"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Error("negative height should be rejected")
	}
}

// captureStdout redirects command output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = saved })
	return &buf
}

func TestColumnBars(t *testing.T) {
	tests := []struct {
		heights []float64
		want    string
	}{
		{[]float64{100, 100, 100}, "███"},
		{[]float64{0, 50, 100}, "▁▄█"},
		{[]float64{0, 0}, "▁▁"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := columnBars(tt.heights); got != tt.want {
			t.Errorf("columnBars(%v) = %q, want %q", tt.heights, got, tt.want)
		}
	}
}

func TestWindowCommandPrintsRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	doc := layout.Compute(sampleItems, 2, masonry.Options{ColumnWidth: 200, Gap: 10, ItemHeight: 300, Overscan: 1})
	if err := layout.WriteFile(doc, path); err != nil {
		t.Fatal(err)
	}
	out := captureStdout(t)

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"window", path, "--scroll-top", "0", "--height", "600"})
	if err := root.Execute(); err != nil {
		t.Fatalf("window: %v", err)
	}

	var got layout.WindowResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if got.Range != (masonry.Range{Start: 0, End: 6}) || len(got.Items) != 5 {
		t.Errorf("window = %+v", got)
	}
}

func TestSourceFlagsApply(t *testing.T) {
	f := sourceFlags{dir: "/photos", perPage: 12, query: "cats"}
	c := config.Default()
	if err := f.apply(c); err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if c.Source.Kind != "local" || c.Source.Dir != "/photos" || c.Source.PerPage != 12 || c.Source.Query != "cats" {
		t.Errorf("source = %+v", c.Source)
	}

	bad := sourceFlags{perPage: 500}
	c = config.Default()
	if err := bad.apply(c); err == nil {
		t.Error("per-page above the source maximum should fail validation")
	}
}
