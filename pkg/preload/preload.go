// Package preload warms image URLs ahead of display.
//
// Every URL is fetched concurrently up to a limit. A failed fetch is
// recorded and logged but never stops the batch: Preload always returns a
// report with Done set, so a caller waiting on it cannot hang on a broken
// image.
package preload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/integrations"
)

// DefaultLimit bounds concurrent fetches.
const DefaultLimit = 6

// Result is the outcome for one URL.
type Result struct {
	URL      string
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Report summarizes a batch.
type Report struct {
	Done    bool
	Loaded  int
	Failed  int
	Results []Result // index aligned with the input
}

// Preloader fetches images.
type Preloader struct {
	http   *http.Client
	limit  int
	logger *log.Logger
}

// Option configures a Preloader.
type Option func(*Preloader)

// WithLimit sets the concurrency limit. Values below 1 keep the default.
func WithLimit(n int) Option {
	return func(p *Preloader) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Preloader) {
		if c != nil {
			p.http = c
		}
	}
}

// WithLogger sets the logger for failed fetches.
func WithLogger(l *log.Logger) Option {
	return func(p *Preloader) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Preloader.
func New(opts ...Option) *Preloader {
	p := &Preloader{
		http:   integrations.NewHTTPClient(),
		limit:  DefaultLimit,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preload fetches every URL. Empty URLs count as failures.
func (p *Preloader) Preload(ctx context.Context, urls []string) Report {
	report := Report{Results: make([]Result, len(urls))}

	var g errgroup.Group
	g.SetLimit(p.limit)
	var mu sync.Mutex

	for i, u := range urls {
		g.Go(func() error {
			start := time.Now()
			n, err := p.fetch(ctx, u)
			res := Result{URL: u, Bytes: n, Duration: time.Since(start), Err: err}

			mu.Lock()
			report.Results[i] = res
			if err != nil {
				report.Failed++
			} else {
				report.Loaded++
			}
			mu.Unlock()

			if err != nil {
				p.logger.Debug("preload failed", "url", u, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Done = true
	return report
}

func (p *Preloader) fetch(ctx context.Context, raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return 0, err
	}
	if u.Scheme == "file" {
		info, err := os.Stat(u.Path)
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	resp, err := p.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.Copy(io.Discard, resp.Body)
}
