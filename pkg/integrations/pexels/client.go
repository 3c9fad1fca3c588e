package pexels

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/feed"
	"github.com/matzehuels/mosaic/pkg/integrations"
)

const (
	// DefaultBaseURL is the public Pexels API root.
	DefaultBaseURL = "https://api.pexels.com/v1"

	// MaxPerPage is the largest page size the API serves.
	MaxPerPage = 80

	sourceName = "pexels"
)

// Options configures a Client.
type Options struct {
	APIKey   string
	BaseURL  string        // DefaultBaseURL when empty
	Cache    cache.Cache   // nil disables caching
	CacheTTL time.Duration // zero keeps entries until evicted
	Keyer    cache.Keyer   // DefaultKeyer when nil
}

// Client talks to a Pexels-compatible API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient validates opts and returns a client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "missing Pexels API key (set PEXELS_API_KEY)")
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if err := errors.ValidateURL(base); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "source base_url")
	}
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	headers := map[string]string{"Authorization": opts.APIKey}
	return &Client{
		Client:  integrations.NewClient(opts.Cache, opts.CacheTTL, headers),
		baseURL: strings.TrimSuffix(base, "/"),
		keyer:   keyer,
	}, nil
}

// Curated returns one page of the curated listing.
// If refresh is true, the cache is bypassed.
func (c *Client) Curated(ctx context.Context, page, perPage int, refresh bool) (*feed.Page, error) {
	return c.listing(ctx, "", page, perPage, refresh)
}

// Search returns one page of photos matching query.
func (c *Client) Search(ctx context.Context, query string, page, perPage int, refresh bool) (*feed.Page, error) {
	if err := errors.ValidateQuery(query); err != nil {
		return nil, err
	}
	return c.listing(ctx, strings.TrimSpace(query), page, perPage, refresh)
}

// Photo returns a single photo's details.
func (c *Client) Photo(ctx context.Context, id int, refresh bool) (*feed.Photo, error) {
	if err := errors.ValidatePhotoID(id); err != nil {
		return nil, err
	}

	var photo feed.Photo
	key := c.keyer.PhotoKey(sourceName, id)
	err := c.Cached(ctx, cache.KeyTypePhoto, key, refresh, &photo, func() error {
		return c.Get(ctx, c.baseURL+"/photos/"+strconv.Itoa(id), &photo)
	})
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, errors.Wrap(errors.ErrCodePhotoNotFound, err, "photo %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (c *Client) listing(ctx context.Context, query string, page, perPage int, refresh bool) (*feed.Page, error) {
	page = max(page, 1)
	perPage = min(max(perPage, 1), MaxPerPage)

	endpoint := "/curated"
	params := url.Values{}
	if query != "" {
		endpoint = "/search"
		params.Set("query", query)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	u := c.baseURL + endpoint + "?" + params.Encode()

	var result feed.Page
	key := c.keyer.PageKey(sourceName, query, page, perPage)
	err := c.Cached(ctx, cache.KeyTypePage, key, refresh, &result, func() error {
		var data apiPage
		if err := c.Get(ctx, u, &data); err != nil {
			return err
		}
		result = data.normalize(page, perPage)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pexels page %d: %w", page, err)
	}
	return &result, nil
}

// Source returns a feed.Source over the curated listing, or over search
// results when query is not blank.
func (c *Client) Source(query string) *Listing {
	return &Listing{client: c, query: strings.TrimSpace(query)}
}

// Listing adapts a Client to feed.Source.
type Listing struct {
	client *Client
	query  string
}

// Name returns "pexels".
func (l *Listing) Name() string { return sourceName }

// Query returns the search query, empty for the curated listing.
func (l *Listing) Query() string { return l.query }

// Page implements feed.Source.
func (l *Listing) Page(ctx context.Context, number, perPage int) (*feed.Page, error) {
	if l.query == "" {
		return l.client.Curated(ctx, number, perPage, false)
	}
	return l.client.Search(ctx, l.query, number, perPage, false)
}

var _ feed.Source = (*Listing)(nil)

type apiPage struct {
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	Photos       []feed.Photo `json:"photos"`
	TotalResults int          `json:"total_results"`
	NextPage     string       `json:"next_page"`
}

// normalize reduces next_page to a page number. Fields the server left
// zero fall back to what was requested.
func (a apiPage) normalize(page, perPage int) feed.Page {
	p := feed.Page{
		Number:  a.Page,
		PerPage: a.PerPage,
		Total:   a.TotalResults,
		Items:   a.Photos,
	}
	if p.Number == 0 {
		p.Number = page
	}
	if p.PerPage == 0 {
		p.PerPage = perPage
	}
	if a.NextPage != "" {
		p.Next = p.Number + 1
	}
	return p
}
