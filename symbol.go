package docdrift

import (
	"context"
	"strings"
)

// SymbolKind classifies a discovered public symbol.
type SymbolKind string

// Symbol kinds.
const (
	KindModule   SymbolKind = "module"
	KindClass    SymbolKind = "class"
	KindFunction SymbolKind = "function"
	KindMethod   SymbolKind = "method"
)

// Param is one parameter of a discovered function, method, or class
// constructor.
type Param struct {
	Name       string `json:"name"`
	HasDefault bool   `json:"hasDefault"`
}

// Symbol is one publicly visible symbol discovered in the analyzed
// project. Symbols are immutable once discovered.
type Symbol struct {
	// Short name as exported, e.g. "Widget" or "Widget.render" for methods.
	Name string `json:"name"`

	// Fully qualified dotted path of the owning module, e.g. "pkg.widgets".
	Module string `json:"module"`

	Kind      SymbolKind `json:"kind"`
	Params    []Param    `json:"params,omitempty"`
	Docstring string     `json:"docstring,omitempty"`

	// Source location, for reporting.
	File string `json:"file"`
	Line int    `json:"line"`
}

// QualifiedName returns the module-qualified dotted name of the symbol.
func (s *Symbol) QualifiedName() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "." + s.Name
}

// ShortName returns the last dotted segment of the symbol's name,
// e.g. "render" for "Widget.render".
func (s *Symbol) ShortName() string {
	if i := strings.LastIndex(s.Name, "."); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

// DiscoveryResult is the outcome of one catalog discovery pass.
// Qualified symbol names are unique within one result.
type DiscoveryResult struct {
	Symbols []*Symbol

	// UnmatchedExcludes holds exclusion paths that named no discovered
	// submodule, so the caller can warn about stale configuration.
	UnmatchedExcludes []string

	// Warnings records submodules that could not be analyzed.
	Warnings []string
}

// SymbolCatalog discovers the public API surface of a set of root
// packages.
type SymbolCatalog interface {
	// Discover enumerates every public symbol reachable from the given
	// root packages, recursively. Submodules whose fully qualified path is
	// in exclude are skipped entirely. Results are memoized: repeated
	// calls with equal roots and excludes return the cached result.
	//
	// Returns ENOTFOUND if none of the roots names an analyzable package.
	Discover(ctx context.Context, roots []string, exclude []string) (*DiscoveryResult, error)
}

// ModuleIndex answers existence queries about the analyzed project's
// module tree. It is the static analogue of an import environment: the
// resolver consults it instead of importing modules.
type ModuleIndex interface {
	// HasModule reports whether path names an analyzable module or package.
	HasModule(path string) bool

	// HasAttrPath reports whether attr names a top-level binding of the
	// module, or a member one level down ("Class.method").
	HasAttrPath(module, attr string) bool
}
