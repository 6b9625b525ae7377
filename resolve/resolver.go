// Package resolve decides whether dotted cross-reference paths name
// symbols that exist in the analyzed project.
package resolve

import (
	"strings"

	"github.com/murogrande/docdrift"
)

// Compile-time interface verification.
var _ docdrift.ReferenceResolver = (*Resolver)(nil)

// Resolver validates dotted paths against a module index using
// progressive prefix resolution: the longest prefix that names a module
// wins, and the remaining segments must form an attribute path of it.
type Resolver struct {
	index     docdrift.ModuleIndex
	reexports map[string]struct{}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReexports supplies the re-export allowlist: short names that may be
// cross-referenced at an alias shorter than their discovery path. This is
// configuration data, not a heuristic; resolution falls back to it only
// after direct resolution fails.
func WithReexports(names []string) Option {
	return func(r *Resolver) {
		for _, n := range names {
			r.reexports[n] = struct{}{}
		}
	}
}

// NewResolver creates a Resolver over the given module index.
func NewResolver(index docdrift.ModuleIndex, opts ...Option) *Resolver {
	r := &Resolver{
		index:     index,
		reexports: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements docdrift.ReferenceResolver.
//
// The full path is first tried as a module. On failure the last segment
// is split off and the prefix retried, repeating with ever shorter
// prefixes; once a prefix names a module, the split-off segments are
// checked as an attribute path of it. A path may therefore name a module,
// a submodule, or an attribute (class, function, constant, class member)
// of an analyzable ancestor.
func (r *Resolver) Resolve(path string) bool {
	if path == "" {
		return false
	}
	parts := strings.Split(path, ".")

	for i := len(parts); i > 0; i-- {
		prefix := strings.Join(parts[:i], ".")
		if !r.index.HasModule(prefix) {
			continue
		}
		if i == len(parts) {
			return true
		}
		if r.index.HasAttrPath(prefix, strings.Join(parts[i:], ".")) {
			return true
		}
	}

	// Short-name fallback for configured re-exports.
	_, ok := r.reexports[parts[len(parts)-1]]
	return ok
}
