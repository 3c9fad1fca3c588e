// Package pkg provides the core libraries for Mosaic masonry layouts.
//
// # Overview
//
// Mosaic packs variable-height items (photos, cards) into equal-width
// columns, works out which of them a scrolled surface has to mount, and
// loads more as the reader nears the bottom. The pkg directory is organized
// into four areas:
//
//  1. Layout - [masonry] and [layout]: placement, windowing, layout documents
//  2. Scrolling - [viewport] and [schedule]: throttled scroll, debounced
//     bottom and resize events
//  3. Data - [feed], [integrations], [cache], [preload]: paged sources,
//     caching and image warmup
//  4. Service - [server] and [session]: the HTTP layout API
//
// # Architecture
//
// The data flow of a scrolling surface:
//
//	Photo source (Pexels API or local directory)
//	         ↓
//	    [feed] (pages accumulate into an item list)
//	         ↓
//	    [masonry] (incremental placement + visible range)
//	         ↑
//	    [viewport] (scroll/resize events → commits, page loads, relayouts)
//
// # Quick Start
//
// Lay out a list of items and find what is visible:
//
//	import "github.com/matzehuels/mosaic/pkg/masonry"
//
//	grid := masonry.NewGrid(3, masonry.Options{ColumnWidth: 236, Gap: 15})
//	grid.SetContainerHeight(800)
//	grid.SetItems(items, masonry.Appended(len(items)))
//	grid.SetScrollOffset(1200)
//
//	for _, v := range grid.Visible() {
//	    fmt.Println(v.Index, v.Position.Top, v.Position.Left)
//	}
//
// # Main Packages
//
// [masonry] - Shortest-column placement, column count from a viewport width,
// and the visible index range with overscan. [masonry.Grid] keeps the column
// heights between updates so appends only place the new items.
//
// [layout] - The JSON layout document shared by the CLI and other tools.
//
// [viewport] - Event coordinator: scroll commits once per frame, the bottom
// trigger waits for a quiet period, resizes are debounced into a column
// count change.
//
// [schedule] - Clocks, one-shot timer slots and frame sources. The manual
// clock drives the coordinator deterministically in tests.
//
// [feed] - Paged photo feed over a [feed.Source], plus the local directory
// source in feed/local.
//
// [integrations] - Shared HTTP client with caching and retries; the Pexels
// client lives in integrations/pexels.
//
// [cache] - Cache interface with file, Redis, MongoDB and null backends.
//
// [preload] - Bounded-concurrency image fetching and decoding.
//
// [server] - chi-based HTTP API over layout sessions.
//
// [session] - Session store with TTL expiry.
//
// [config], [errors], [buildinfo] - Configuration file, coded errors and
// version information.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/masonry/...            # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include backend and network tests
//
// [masonry]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/masonry
// [layout]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/layout
// [viewport]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/viewport
// [schedule]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/schedule
// [feed]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/feed
// [feed.Source]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/feed#Source
// [integrations]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/cache
// [preload]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/preload
// [server]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/server
// [session]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/buildinfo
// [masonry.Grid]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/masonry#Grid
package pkg
