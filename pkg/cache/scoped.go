package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP server scopes keys by the X-Tenant header so tenants sharing a
// Redis instance never read each other's entries.
//
// Example usage:
//
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
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

// CompactKey generates a prefixed key for compaction results.
func (k *ScopedKeyer) CompactKey(layoutHash string, opts CompactKeyOpts) string {
	return k.prefix + k.inner.CompactKey(layoutHash, opts)
}
