package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend. The layout service scopes keys by API key hash so two users with
// different Pexels accounts never see each other's pages.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:"+Hash([]byte(apiKey))[:12]+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed page key.
func (k *ScopedKeyer) PageKey(source, query string, page, perPage int) string {
	return k.prefix + k.inner.PageKey(source, query, page, perPage)
}

// PhotoKey generates a prefixed photo key.
func (k *ScopedKeyer) PhotoKey(source string, id int) string {
	return k.prefix + k.inner.PhotoKey(source, id)
}
