// Package cache provides pluggable caching for pipeline stages.
//
// Three backends are available: FileCache for CLI usage, RedisCache for
// server deployments, and NullCache to disable caching. Keys are built by
// a Keyer so the stage code never concatenates strings itself.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact kind.
const (
	// LayoutTTL is how long computed layouts stay cached. Layouts are
	// deterministic in their inputs, so this is effectively an eviction
	// budget rather than a freshness bound.
	LayoutTTL = 30 * 24 * time.Hour

	// ArtifactTTL is how long rendered artifacts (SVG, PNG, PDF) stay
	// cached.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is the storage backend interface.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts holds the layout parameters that shape the computed
// geometry and therefore the cache key.
type LayoutKeyOpts struct {
	Scale       float64
	Clockwise   bool
	LengthMode  bool
	CenterInset float64
	Bins        int
	Separators  bool
	Stats       bool
	DP          int
}

// ArtifactKeyOpts holds the render parameters that shape the final
// artifact and therefore the cache key.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Colors []string
	Legend bool
	Width  float64
	Height float64
	Scale  float64

	// VectorPNG distinguishes the librsvg PNG path from the built-in
	// rasterizer; the two produce different bytes for the same layout.
	VectorPNG bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, from the document
	// hash and the layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the
	// layout hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into namespaced SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
