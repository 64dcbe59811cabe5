// Package cache provides byte-oriented caching for derived animation data.
//
// The pipeline uses it to keep prepared spline geometry and sampled frame
// sets across runs: preparation is the expensive stage, and its output is
// a pure function of the dataset and the transition configuration. Only
// derived data is cached; datasets and playback state never are.
//
// Backends:
//   - file: directory of hashed entries for CLI usage
//   - redis: shared cache for multi-instance service deployments
//   - null: caching disabled
//
// Keys are produced by a [Keyer] so every caller hashes the same inputs
// the same way. [ScopedKeyer] prefixes keys for per-tenant isolation.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Stage TTLs. Geometry is a pure function of the dataset and transition
// configuration, so it keeps the longest; frames and HTTP responses churn
// with sampling options and deploys.
const (
	TTLGeometry = 7 * 24 * time.Hour
	TTLFrames   = 24 * time.Hour
	TTLHTTP     = time.Hour
)

// Cache is the storage contract shared by all backends. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GeometryKeyOpts captures everything that changes prepared spline
// geometry for a given dataset.
type GeometryKeyOpts struct {
	Strategy string
	Views    []string
	Params   map[string]any
}

// FramesKeyOpts captures everything that changes a sampled frame set
// derived from prepared geometry.
type FramesKeyOpts struct {
	Frames int
	Format string
}

// Keyer generates cache keys for the pipeline stages. Implementations
// must be deterministic: equal inputs yield equal keys across processes.
type Keyer interface {
	// HTTPKey generates a key for cached HTTP responses.
	HTTPKey(namespace, key string) string

	// GeometryKey generates a key for prepared geometry, derived from the
	// dataset content hash and the transition configuration.
	GeometryKey(datasetHash string, opts GeometryKeyOpts) string

	// FramesKey generates a key for sampled frames, derived from the
	// geometry hash and the sampling options.
	FramesKey(geometryHash string, opts FramesKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// hash of the JSON-encoded inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// GeometryKey generates a key for prepared geometry.
func (k *DefaultKeyer) GeometryKey(datasetHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", datasetHash, opts)
}

// FramesKey generates a key for sampled frames.
func (k *DefaultKeyer) FramesKey(geometryHash string, opts FramesKeyOpts) string {
	return hashKey("frames", geometryHash, opts)
}
