//go:build integration

package pexels

import (
	"context"
	"os"
	"testing"
)

func TestIntegration_Curated(t *testing.T) {
	key := os.Getenv("PEXELS_API_KEY")
	if key == "" {
		t.Skip("PEXELS_API_KEY not set")
	}
	c, err := NewClient(Options{APIKey: key})
	if err != nil {
		t.Fatal(err)
	}

	page, err := c.Curated(context.Background(), 1, 5, true)
	if err != nil {
		t.Fatalf("Curated() error: %v", err)
	}
	if len(page.Items) == 0 {
		t.Fatal("expected photos")
	}
	for _, p := range page.Items {
		if p.Width <= 0 || p.Height <= 0 {
			t.Errorf("photo %d has no dimensions", p.ID)
		}
	}
}
