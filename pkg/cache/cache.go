// Package cache stores pipeline results between runs.
//
// The pipeline caches two kinds of values: the analysis of a document
// (validation issues and layout tree) keyed by the content hash of its
// source, and rendered artifacts keyed by the hash of the layout they were
// rendered from. Values are opaque bytes; the pipeline encodes them with
// package codec.
//
// Three backends implement [Cache]:
//   - [FileCache]: zstd-compressed entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer] so that callers never format them by hand.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default time-to-live values for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds the inputs besides the source that affect a cached
// analysis.
type LayoutKeyOpts struct {
	// Schema is the version of the cached value's encoding. Bumping it
	// orphans every existing entry.
	Schema int `json:"schema"`
}

// ArtifactKeyOpts holds the inputs that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	MeshCells int    `json:"mesh_cells,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the analysis of a document whose source
	// hashes to sourceHash.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout
	// whose encoding hashes to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:hash(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sourceHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Describe returns a short human-readable form of key for logs.
func Describe(key string) string {
	if len(key) > 24 {
		return fmt.Sprintf("%s…", key[:24])
	}
	return key
}
