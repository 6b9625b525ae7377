package docdrift

// ReferenceResolver decides whether a dotted cross-reference path names a
// symbol that exists in the analyzed project.
type ReferenceResolver interface {
	// Resolve reports whether path names a module, a submodule, or an
	// attribute of some analyzable ancestor module.
	Resolve(path string) bool
}
