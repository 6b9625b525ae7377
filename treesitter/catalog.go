// Package treesitter provides a docdrift.SymbolCatalog that discovers a
// Python project's public API surface by statically parsing its source
// with the tree-sitter Python grammar. No code from the analyzed project
// is ever executed.
package treesitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/murogrande/docdrift"
)

// Compile-time interface verification.
var (
	_ docdrift.SymbolCatalog = (*Catalog)(nil)
	_ docdrift.ModuleIndex   = (*Catalog)(nil)
)

// Directories never worth descending into.
var skipDirs = map[string]struct{}{
	"__pycache__":   {},
	".git":          {},
	".tox":          {},
	".venv":         {},
	"venv":          {},
	"node_modules":  {},
	"build":         {},
	"dist":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
}

// Catalog discovers public symbols in a Python project rooted at a
// directory. Discovery results are memoized per (roots, exclude) key, and
// the catalog doubles as the module index consulted by the resolver.
type Catalog struct {
	root string
	gi   *ignore.GitIgnore

	mu      sync.Mutex
	cache   map[string]*docdrift.DiscoveryResult
	modules map[string]*moduleInfo

	parseCount atomic.Int64
}

// NewCatalog creates a Catalog for the project at root.
// Returns EINVALID if root is not a directory.
func NewCatalog(root string) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, docdrift.Errorf(docdrift.EINVALID, "invalid project root %q", root)
	}
	c := &Catalog{
		root:    root,
		cache:   make(map[string]*docdrift.DiscoveryResult),
		modules: make(map[string]*moduleInfo),
	}
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		c.gi = gi
	}
	return c, nil
}

// ParseCount returns the number of source files parsed so far. It only
// grows when a discovery misses the cache.
func (c *Catalog) ParseCount() int64 {
	return c.parseCount.Load()
}

// Discover implements docdrift.SymbolCatalog.
func (c *Catalog) Discover(ctx context.Context, roots []string, exclude []string) (*docdrift.DiscoveryResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := discoveryKey(roots, exclude)
	if cached, ok := c.cache[key]; ok {
		return cached, nil
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = false // false until matched
	}

	result := &docdrift.DiscoveryResult{}
	seen := make(map[string]bool)
	found := false

	for _, rootPkg := range roots {
		dir, ok := c.locateRoot(rootPkg)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("root package %q not found", rootPkg))
			continue
		}
		found = true
		c.walkPackage(ctx, dir, rootPkg, excluded, seen, result)
	}
	if !found {
		return nil, docdrift.Errorf(docdrift.ENOTFOUND, "no analyzable packages among roots %v", roots)
	}

	for _, e := range exclude {
		if !excluded[e] {
			result.UnmatchedExcludes = append(result.UnmatchedExcludes, e)
		}
	}
	sort.Strings(result.UnmatchedExcludes)

	c.cache[key] = result
	return result, nil
}

// locateRoot finds the directory of a root package, checking the project
// root and the src/ layout.
func (c *Catalog) locateRoot(pkg string) (string, bool) {
	for _, candidate := range []string{
		filepath.Join(c.root, pkg),
		filepath.Join(c.root, "src", pkg),
	} {
		if _, err := os.Stat(filepath.Join(candidate, "__init__.py")); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// walkPackage analyzes the package at dir (dotted path pkgPath) and
// recurses into subpackages. Plain .py modules are parsed into the module
// index; only packages contribute public symbols, mirroring how an import
// of the package surfaces its __init__ namespace.
//
// Exclusion suppresses symbol emission only. Excluded modules are still
// parsed into the index: the index models the import environment, which
// exclusion does not affect, so cross-references into excluded submodules
// stay resolvable and re-export chasing still reaches their definitions.
func (c *Catalog) walkPackage(ctx context.Context, dir, pkgPath string, excluded map[string]bool, seen map[string]bool, result *docdrift.DiscoveryResult) {
	excludedPkg := c.matchExclude(pkgPath, excluded)

	pkgMod := c.parseFile(ctx, filepath.Join(dir, "__init__.py"), pkgPath, true, result)

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not read %s: %v", dir, err))
		return
	}

	// Parse sibling modules first so the package's re-exports can be
	// chased into them.
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".py") || name == "__init__.py" {
			continue
		}
		if strings.HasPrefix(name, ".") || c.ignored(filepath.Join(dir, name)) {
			continue
		}
		modPath := pkgPath + "." + strings.TrimSuffix(name, ".py")
		c.matchExclude(modPath, excluded) // stale-exclusion accounting only
		c.parseFile(ctx, filepath.Join(dir, name), modPath, false, result)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			continue
		}
		if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
			continue
		}
		subDir := filepath.Join(dir, name)
		if c.ignored(subDir) {
			continue
		}
		if _, err := os.Stat(filepath.Join(subDir, "__init__.py")); err != nil {
			continue
		}
		c.walkPackage(ctx, subDir, pkgPath+"."+name, excluded, seen, result)
	}

	if pkgMod != nil && !excludedPkg {
		c.collectSymbols(pkgMod, seen, result)
	}
}

// matchExclude reports whether path is covered by an exclusion entry,
// marking the entry as matched.
func (c *Catalog) matchExclude(path string, excluded map[string]bool) bool {
	for e := range excluded {
		if path == e || strings.HasPrefix(path, e+".") {
			excluded[e] = true
			return true
		}
	}
	return false
}

func (c *Catalog) ignored(path string) bool {
	if c.gi == nil {
		return false
	}
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return false
	}
	return c.gi.MatchesPath(rel)
}

// parseFile parses one source file into the module index. Parse failures
// are recorded as warnings; discovery continues.
func (c *Catalog) parseFile(ctx context.Context, file, modPath string, pkg bool, result *docdrift.DiscoveryResult) *moduleInfo {
	if mod, ok := c.modules[modPath]; ok {
		return mod
	}
	source, err := os.ReadFile(file)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not read %s: %v", modPath, err))
		return nil
	}
	rel, err := filepath.Rel(c.root, file)
	if err != nil {
		rel = file
	}
	c.parseCount.Add(1)
	mod, err := parseModule(ctx, source, modPath, rel, pkg)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not parse %s: %v", modPath, err))
		return nil
	}
	c.modules[modPath] = mod
	return mod
}

// collectSymbols enumerates the public surface of a package: __all__ when
// assigned, otherwise non-underscore top-level names. Names bound by
// imports are chased through the index to recover the defining
// class/function; the owning module recorded is the exporting package.
func (c *Catalog) collectSymbols(mod *moduleInfo, seen map[string]bool, result *docdrift.DiscoveryResult) {
	names := mod.all
	if !mod.hasAll {
		for n := range mod.attrNames() {
			if !strings.HasPrefix(n, "_") {
				names = append(names, n)
			}
		}
		sort.Strings(names)
	}

	for _, name := range names {
		if name == "__version__" {
			continue
		}
		def := c.chaseDef(mod, name, 0)
		if def == nil {
			continue // constant, external re-export, or unresolved
		}
		c.emit(mod, name, def, seen, result)
	}
}

const maxImportHops = 8

// chaseDef resolves a name bound in mod to its defining class/function,
// following import bindings through the index.
func (c *Catalog) chaseDef(mod *moduleInfo, name string, hops int) *definition {
	if hops > maxImportHops {
		return nil
	}
	if def, ok := mod.defs[name]; ok {
		return def
	}
	ref, ok := mod.imports[name]
	if !ok {
		// A `from x import *` may bring the name in from a submodule.
		if star, found := mod.imports["*"]; found {
			if src, present := c.modules[star.module]; present {
				return c.chaseDef(src, name, hops+1)
			}
		}
		return nil
	}
	if ref.name != "*" {
		// `from x import name` may also name a submodule rather than an
		// attribute; submodules carry no definition.
		if src, present := c.modules[ref.module]; present {
			return c.chaseDef(src, ref.name, hops+1)
		}
	}
	return nil
}

func (c *Catalog) emit(mod *moduleInfo, name string, def *definition, seen map[string]bool, result *docdrift.DiscoveryResult) {
	qualified := mod.path + "." + name
	if seen[qualified] {
		return
	}
	seen[qualified] = true

	sym := &docdrift.Symbol{
		Name:      name,
		Module:    mod.path,
		Kind:      def.kind,
		Params:    def.params,
		Docstring: def.doc,
		File:      mod.file,
		Line:      def.line,
	}
	result.Symbols = append(result.Symbols, sym)

	if def.kind != docdrift.KindClass {
		return
	}
	for _, method := range def.methods {
		if strings.HasPrefix(method.name, "_") {
			continue
		}
		mq := qualified + "." + method.name
		if seen[mq] {
			continue
		}
		seen[mq] = true
		result.Symbols = append(result.Symbols, &docdrift.Symbol{
			Name:      name + "." + method.name,
			Module:    mod.path,
			Kind:      docdrift.KindMethod,
			Params:    method.params,
			Docstring: method.doc,
			File:      mod.file,
			Line:      method.line,
		})
	}
}

// HasModule implements docdrift.ModuleIndex.
func (c *Catalog) HasModule(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.modules[path]
	return ok
}

// HasAttrPath implements docdrift.ModuleIndex.
func (c *Catalog) HasAttrPath(module, attr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	mod, ok := c.modules[module]
	if !ok {
		return false
	}

	head, rest := attr, ""
	if i := strings.Index(attr, "."); i >= 0 {
		head, rest = attr[:i], attr[i+1:]
	}

	names := mod.attrNames()
	if _, bound := names[head]; !bound {
		if _, star := mod.imports["*"]; !star {
			return false
		}
		// Wildcard imports bind names we cannot enumerate without chasing.
		if c.chaseDef(mod, head, 0) == nil {
			return false
		}
	}
	if rest == "" {
		return true
	}
	if strings.Contains(rest, ".") {
		return false // members nest at most one level (Class.member)
	}
	def := c.chaseDef(mod, head, 0)
	if def == nil || def.kind != docdrift.KindClass {
		return false
	}
	_, ok = def.fields[rest]
	return ok
}

// discoveryKey builds the memoization key: ordered roots plus the sorted
// exclusion set, so equal logical queries hit the cache regardless of
// exclusion ordering.
func discoveryKey(roots, exclude []string) string {
	ex := append([]string(nil), exclude...)
	sort.Strings(ex)
	return strings.Join(roots, "\x1f") + "\x1e" + strings.Join(ex, "\x1f")
}
