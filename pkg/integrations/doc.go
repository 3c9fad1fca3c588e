// Package integrations provides HTTP clients for photo source APIs.
//
// # Overview
//
// Each source has its own subpackage:
//
//   - [pexels]: Pexels-compatible photo API (curated, search, photo details)
//
// # Client Pattern
//
// Source clients embed the shared [Client], which handles:
//   - HTTP requests with retry for transient failures
//   - Response caching through [cache.Cache] with a per-entry TTL
//   - Mapping of HTTP statuses to error codes from pkg/errors
//
//	client := pexels.NewClient(pexels.Options{APIKey: key, Cache: c, CacheTTL: time.Hour})
//	page, err := client.Curated(ctx, 1, 30, false)  // false = use cache
//
// A source client also satisfies feed.Source so a feed.Feed can page it.
//
// [pexels]: github.com/matzehuels/mosaic/pkg/integrations/pexels
// [cache.Cache]: github.com/matzehuels/mosaic/pkg/cache.Cache
package integrations
