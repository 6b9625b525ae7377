// Package check provides drift detection orchestration. It drives the
// symbol catalog and artifact scanner over a project, cross-references
// their outputs through the resolver and link validators, and merges the
// verdicts into a report of structured findings.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/murogrande/docdrift"
)

// Nav answers lookups against the documentation navigation manifest.
// A nil-backed implementation behaves as "no manifest".
type Nav interface {
	// Paths returns every file path the manifest references.
	Paths() []docdrift.NavPath

	// Contains reports whether the manifest references the docs-root
	// relative path.
	Contains(rel string) bool
}

// Detector orchestrates the consistency checks. It produces findings and
// warnings only; rendering and exit-code policy belong to the caller.
type Detector struct {
	Catalog  docdrift.SymbolCatalog
	Scanner  docdrift.ArtifactScanner
	Resolver docdrift.ReferenceResolver
	Local    docdrift.LocalLinkResolver
	External docdrift.LinkValidator
	Grader   docdrift.Grader // optional capability
	Nav      Nav             // optional

	// Roots are the packages whose public surface is checked.
	Roots []string

	// Exclude holds fully qualified submodule paths to skip.
	Exclude []string

	// DocsRoot is the documentation directory, used to anchor docstring
	// links and nav lookups.
	DocsRoot string

	// IgnoreParams are parameter names exempt from the
	// undocumented-parameter check.
	IgnoreParams []string

	// Reexports are symbol short names re-exported from elsewhere that
	// need no local documentation.
	Reexports []string
}

// Options selects which check groups run. The basic checks (coverage,
// references, parameters, local links, nav paths) always run.
type Options struct {
	ExternalLinks bool
	Quality       bool
}

// Check runs the configured checks and returns the report.
//
// Returns an error only for fatal conditions: an invalid project
// configuration or a root package list that discovers nothing. Per-item
// failures become findings or warnings, never errors.
func (d *Detector) Check(ctx context.Context, opts Options) (*docdrift.Report, error) {
	discovery, err := d.Catalog.Discover(ctx, d.Roots, d.Exclude)
	if err != nil {
		return nil, err
	}

	report := &docdrift.Report{ID: uuid.NewString()}
	for _, w := range discovery.Warnings {
		report.Warn(w)
	}
	for _, e := range discovery.UnmatchedExcludes {
		report.Warn(fmt.Sprintf("excluded submodule %q matched nothing", e))
	}
	for _, w := range d.Scanner.Warnings() {
		report.Warn(w)
	}

	d.checkCoverage(discovery, report)
	d.checkReferences(report)
	d.checkParams(discovery, report)
	d.checkLocalLinks(report)
	d.checkNavPaths(report)
	d.checkDocstringLinks(discovery, report)

	if opts.ExternalLinks {
		d.checkExternalLinks(ctx, report)
	}
	if opts.Quality {
		d.checkQuality(ctx, discovery, report)
	}

	return report, nil
}

// checkCoverage flags public symbols no cross-reference points at.
// Methods are covered by their class's directive and are not flagged
// individually.
func (d *Detector) checkCoverage(discovery *docdrift.DiscoveryResult, report *docdrift.Report) {
	refs := d.Scanner.CrossRefs()
	documented := make(map[string]struct{}, len(refs))
	docNames := make(map[string]map[string]struct{}, len(d.Roots))
	for _, root := range d.Roots {
		docNames[root] = make(map[string]struct{})
	}
	for _, ref := range refs {
		documented[ref.Path] = struct{}{}
		parts := strings.Split(ref.Path, ".")
		if len(parts) < 2 {
			continue
		}
		if names, ok := docNames[parts[0]]; ok {
			names[parts[len(parts)-1]] = struct{}{}
			names[ref.Path] = struct{}{}
		}
	}

	reexports := toSet(d.Reexports)
	for _, sym := range discovery.Symbols {
		if sym.Kind == docdrift.KindMethod {
			continue
		}
		if _, ok := reexports[sym.Name]; ok {
			continue
		}
		if isDocumented(sym, documented, docNames) {
			continue
		}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingMissingDoc,
			Subject:  sym.QualifiedName(),
			Location: fmt.Sprintf("%s:%d", sym.File, sym.Line),
			Message:  fmt.Sprintf("public %s %s has no cross-reference in the docs", sym.Kind, sym.QualifiedName()),
		})
	}
}

// isDocumented checks the three naming conventions under which a symbol
// counts as documented: short name on its base module, exact qualified
// name, or a cross-reference suffix-matching the name (re-export pages).
func isDocumented(sym *docdrift.Symbol, documented map[string]struct{}, docNames map[string]map[string]struct{}) bool {
	base := strings.SplitN(sym.Module, ".", 2)[0]
	if names, ok := docNames[base]; ok {
		if _, found := names[sym.Name]; found {
			return true
		}
	}
	if _, found := documented[sym.QualifiedName()]; found {
		return true
	}
	for ref := range documented {
		if strings.HasSuffix(ref, "."+sym.Name) {
			return true
		}
	}
	return false
}

// checkReferences flags cross-references whose dotted path resolves to
// nothing.
func (d *Detector) checkReferences(report *docdrift.Report) {
	for _, ref := range d.Scanner.CrossRefs() {
		if d.Resolver.Resolve(ref.Path) {
			continue
		}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingBrokenReference,
			Subject:  ref.Path,
			Location: fmt.Sprintf("%s:%d", ref.File, ref.Line),
			Message:  fmt.Sprintf("cross-reference %s does not resolve to any symbol", ref.Path),
		})
	}
}

// checkParams flags parameters not mentioned anywhere in the owning
// docstring. Symbols without a docstring are skipped here; they surface
// through the coverage check instead.
func (d *Detector) checkParams(discovery *docdrift.DiscoveryResult, report *docdrift.Report) {
	ignore := toSet(d.IgnoreParams)
	for _, sym := range discovery.Symbols {
		if sym.Docstring == "" || len(sym.Params) == 0 {
			continue
		}
		var missing []string
		for _, p := range sym.Params {
			if _, skip := ignore[p.Name]; skip {
				continue
			}
			if !strings.Contains(sym.Docstring, p.Name) {
				missing = append(missing, p.Name)
			}
		}
		if len(missing) == 0 {
			continue
		}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingUndocumentedParam,
			Subject:  sym.QualifiedName(),
			Location: fmt.Sprintf("%s:%d", sym.File, sym.Line),
			Message:  fmt.Sprintf("parameters not mentioned in docstring: %s", strings.Join(missing, ", ")),
		})
	}
}

// checkLocalLinks flags local links whose target is absent under every
// resolution candidate, and Python source links bypassing the nav
// manifest.
func (d *Detector) checkLocalLinks(report *docdrift.Report) {
	for _, link := range d.Scanner.LocalLinks() {
		res := d.Local.Resolve(link.Target, link.File)
		location := fmt.Sprintf("%s:%d", link.File, link.Line)
		if !res.Found {
			report.Add(brokenLocalLink(link.Target, location, res.Reason))
			continue
		}
		if strings.HasSuffix(strings.SplitN(link.Target, "#", 2)[0], ".py") && d.Nav != nil {
			rel, err := filepath.Rel(d.DocsRoot, res.Path)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			if !d.Nav.Contains(rel) {
				report.Add(brokenLocalLink(link.Target, location, ".py file not in nav manifest"))
			}
		}
	}
}

func brokenLocalLink(target, location, reason string) docdrift.Finding {
	msg := fmt.Sprintf("local link %s does not resolve", target)
	if reason != "" {
		msg = fmt.Sprintf("local link %s: %s", target, reason)
	}
	return docdrift.Finding{
		Kind:     docdrift.FindingBrokenLocalLink,
		Subject:  target,
		Location: location,
		Message:  msg,
	}
}

// checkNavPaths flags nav manifest entries pointing at missing files.
func (d *Detector) checkNavPaths(report *docdrift.Report) {
	if d.Nav == nil {
		return
	}
	for _, nav := range d.Nav.Paths() {
		if _, err := os.Stat(filepath.Join(d.DocsRoot, nav.Path)); err == nil {
			continue
		}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingBrokenNavPath,
			Subject:  nav.Path,
			Location: nav.File,
			Message:  fmt.Sprintf("nav entry %s does not exist under the docs root", nav.Path),
		})
	}
}

// checkDocstringLinks resolves local links found inside docstrings. The
// anchor is the documentation page whose cross-reference directive pulls
// the symbol in, because that is where the rendering tool inlines the
// docstring; the symbol's source file is irrelevant for resolution.
func (d *Detector) checkDocstringLinks(discovery *docdrift.DiscoveryResult, report *docdrift.Report) {
	anchors := make(map[string]string)
	for _, ref := range d.Scanner.CrossRefs() {
		if _, ok := anchors[ref.Path]; !ok {
			anchors[ref.Path] = ref.File
		}
		// Register the short alias too: a symbol re-exported at the
		// package root is commonly referenced as base.Name.
		parts := strings.Split(ref.Path, ".")
		if len(parts) > 2 {
			short := parts[0] + "." + parts[len(parts)-1]
			if _, ok := anchors[short]; !ok {
				anchors[short] = ref.File
			}
		}
	}
	defaultAnchor := filepath.Join(d.DocsRoot, "index.md")

	for _, sym := range discovery.Symbols {
		if sym.Docstring == "" {
			continue
		}
		fqn := sym.QualifiedName()
		anchor, ok := anchors[fqn]
		if !ok {
			anchor = defaultAnchor
		}
		for _, link := range d.Scanner.ScanText(sym.Docstring, anchor) {
			res := d.Local.Resolve(link.Target, anchor)
			if res.Found {
				continue
			}
			report.Add(brokenLocalLink(link.Target,
				fmt.Sprintf("%s (docstring):%d", fqn, link.Line), res.Reason))
		}
	}
}

// checkExternalLinks validates every external link and flags the ones
// whose verdict is not ok. Broken (authoritative) and error
// (inconclusive) verdicts are reported with distinct messages so callers
// can retry or ignore the inconclusive ones.
func (d *Detector) checkExternalLinks(ctx context.Context, report *docdrift.Report) {
	links := d.Scanner.ExternalLinks()
	report.TotalExternalLinks = len(links)
	if len(links) == 0 {
		return
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		urls = append(urls, link.URL)
	}
	verdicts := d.External.Validate(ctx, urls)

	for _, link := range links {
		verdict, ok := verdicts[link.URL]
		if !ok || verdict.Status == docdrift.LinkOK {
			continue
		}
		msg := fmt.Sprintf("broken: %s", verdict.Reason)
		if verdict.Status == docdrift.LinkError {
			msg = fmt.Sprintf("could not verify: %s", verdict.Reason)
		}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingBrokenExternalLink,
			Subject:  link.URL,
			Location: fmt.Sprintf("%s:%d", link.File, link.Line),
			Message:  msg,
		})
	}
}

// checkQuality grades docstrings through the optional Grader capability.
// Identical docstrings are graded once. An unavailable grader degrades to
// a warning.
func (d *Detector) checkQuality(ctx context.Context, discovery *docdrift.DiscoveryResult, report *docdrift.Report) {
	if d.Grader == nil {
		report.Warn("quality checks skipped: no grader configured")
		return
	}
	graded := make(map[uint64][]docdrift.QualityIssue)

	for _, sym := range discovery.Symbols {
		if sym.Docstring == "" {
			continue
		}
		key := xxhash.Sum64String(sym.Docstring)
		issues, ok := graded[key]
		if !ok {
			var err error
			issues, err = d.Grader.Grade(ctx, sym)
			if err != nil {
				if docdrift.ErrorCode(err) == docdrift.EUNAVAILABLE {
					report.Warn(fmt.Sprintf("quality checks skipped: %s", docdrift.ErrorMessage(err)))
					return
				}
				report.Warn(fmt.Sprintf("quality check failed for %s: %s", sym.QualifiedName(), docdrift.ErrorMessage(err)))
				continue
			}
			graded[key] = issues
		}
		for _, issue := range issues {
			report.Add(docdrift.Finding{
				Kind:    docdrift.FindingQuality,
				Subject: sym.QualifiedName(),
				Message: fmt.Sprintf("[%s/%s] %s", issue.Severity, issue.Category, issue.Message),
			})
		}
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
