package cache

// ScopedKeyer wraps a Keyer with a prefix so several services or tenants
// can share one backend without colliding.
//
// Example usage:
//
//	// Keys for the staging deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DocumentKey generates a prefixed key for a localized document.
func (k *ScopedKeyer) DocumentKey(contentHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(contentHash, opts)
}
