package cache

import "strings"

// ScopedKeyer namespaces the keys of another [Keyer]. Deployments sharing
// one Redis database use distinct scopes so neither reads the other's
// layouts, and bumping a scope ("arcstrata:v2") orphans every old entry at
// once.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner (the [DefaultKeyer] when nil) under scope.
// A trailing ':' separator is added when scope lacks one; an empty scope
// leaves keys unchanged.
func NewScopedKeyer(inner Keyer, scope string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope != "" && !strings.HasSuffix(scope, ":") {
		scope += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: scope}
}

// Prefix returns the string prepended to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) LayoutKey(sentenceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sentenceHash, opts)
}
