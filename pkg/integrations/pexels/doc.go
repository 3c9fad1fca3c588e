// Package pexels provides a client for the Pexels photo API and compatible
// mirrors.
//
// # Endpoints
//
//   - GET {base}/curated?page=&per_page=
//   - GET {base}/search?query=&page=&per_page=
//   - GET {base}/photos/{id}
//
// Every request carries the API key in the Authorization header. Listing
// responses are normalized into [feed.Page] values, with the next_page URL
// reduced to a page number.
//
// # Caching
//
// Pages and photos are cached under keys from [cache.Keyer], so the CLI,
// the terminal browser and the layout service share entries when they share
// a backend.
//
// [feed.Page]: github.com/matzehuels/mosaic/pkg/feed.Page
// [cache.Keyer]: github.com/matzehuels/mosaic/pkg/cache.Keyer
package pexels
