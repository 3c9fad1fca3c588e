package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key types reported to cache hooks.
const (
	KeyTypePage  = "page"
	KeyTypePhoto = "photo"
)

// Keyer names cache entries.
type Keyer interface {
	// PageKey names one page of a source listing. An empty query means the
	// source's curated listing.
	PageKey(source, query string, page, perPage int) string

	// PhotoKey names a single photo's details.
	PhotoKey(source string, id int) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PageKey hashes the query so arbitrary search text yields a safe key.
func (DefaultKeyer) PageKey(source, query string, page, perPage int) string {
	return hashKey(KeyTypePage+":"+source, query, page, perPage)
}

// PhotoKey returns photo:<source>:<id>.
func (DefaultKeyer) PhotoKey(source string, id int) string {
	return fmt.Sprintf("%s:%s:%d", KeyTypePhoto, source, id)
}

// hashKey joins prefix with a digest of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
