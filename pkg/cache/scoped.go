package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The service uses it so different deployments or users sharing one Redis
// instance get separate cache namespaces.
//
// Example usage:
//
//	// Per-deployment keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "prod:")
//
//	// Shared keys
//	keyer := NewDefaultKeyer()
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GeometryKey generates a prefixed key for prepared geometry.
func (k *ScopedKeyer) GeometryKey(datasetHash string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(datasetHash, opts)
}

// FramesKey generates a prefixed key for sampled frames.
func (k *ScopedKeyer) FramesKey(geometryHash string, opts FramesKeyOpts) string {
	return k.prefix + k.inner.FramesKey(geometryHash, opts)
}
