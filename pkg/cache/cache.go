// Package cache provides content-addressed caching for pipeline stages.
//
// The pipeline caches parsed feature sets and rendered artifacts keyed on
// content hashes, so re-rendering an unchanged annotation table is a pair of
// cache reads. Layout is never cached: placement is fast and deterministic,
// and artifacts already embed its result.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry kind. Parsed features are cheap to rebuild; rendered
// artifacts can be expensive when rsvg-convert is involved.
const (
	TTLFeatures = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// FeatureKeyOpts are the inputs, besides the source content, that change the
// parsed feature set.
type FeatureKeyOpts struct {
	RulesHash string // classification rules fingerprint
}

// ArtifactKeyOpts are the render settings that change an output artifact.
type ArtifactKeyOpts struct {
	Format       string
	Style        string
	Scale        float64
	GeometryHash string
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// FeatureKey returns the key for a parsed and classified feature set.
	// sourceHash is the hash of the raw input file.
	FeatureKey(sourceHash string, opts FeatureKeyOpts) string
	// ArtifactKey returns the key for one rendered artifact.
	// featureHash is the hash of the feature set the figure was built from.
	ArtifactKey(featureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into prefixed sha256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// FeatureKey implements Keyer.
func (k *DefaultKeyer) FeatureKey(sourceHash string, opts FeatureKeyOpts) string {
	return hashKey("features", sourceHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(featureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", featureHash, opts)
}
