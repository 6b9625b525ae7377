// Package scan extracts documentation artifacts (cross-reference
// directives, local file links, external links) from a docs tree of
// markdown files and Jupyter notebooks.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/murogrande/docdrift"
)

// Compile-time interface verification.
var _ docdrift.ArtifactScanner = (*Scanner)(nil)

var (
	// `::: dotted.path` or `:: dotted.path` at the start of a line.
	crossRefRe = regexp.MustCompile(`^:::?\s+([\w.]+)`)

	// [text](https://...) markdown links.
	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^)]+)\)`)

	// Bare URLs; candidates preceded by ( or [ are dropped after matching
	// since they already surfaced as markdown links.
	bareURLRe = regexp.MustCompile(`https?://[^\s)>\]"']+`)

	// [text](path) where path carries a known file extension or starts
	// with ./ or ../ .
	localLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+?(?:\.py|\.ipynb|\.md|\.txt|\.yml|\.yaml|\.json|\.toml)(?:#[^)]*)?|\.\.?/[^)]+)\)`)
)

// Scanner reads a docs tree once and serves the extracted artifact
// collections from its cache. The three collections are populated
// together on first access, no matter which one is requested first.
type Scanner struct {
	docsRoot string

	scanned   bool
	scanCount int

	crossRefs []docdrift.CrossRef
	local     []docdrift.LocalLink
	external  []docdrift.ExternalLink
	warnings  []string
}

// NewScanner creates a Scanner over the given docs directory.
func NewScanner(docsRoot string) *Scanner {
	return &Scanner{docsRoot: docsRoot}
}

// ScanCount returns how many full passes over the docs tree have run.
// It never exceeds 1 for a given Scanner.
func (s *Scanner) ScanCount() int {
	return s.scanCount
}

// CrossRefs implements docdrift.ArtifactScanner.
func (s *Scanner) CrossRefs() []docdrift.CrossRef {
	s.ensureScanned()
	return s.crossRefs
}

// LocalLinks implements docdrift.ArtifactScanner.
func (s *Scanner) LocalLinks() []docdrift.LocalLink {
	s.ensureScanned()
	return s.local
}

// ExternalLinks implements docdrift.ArtifactScanner.
func (s *Scanner) ExternalLinks() []docdrift.ExternalLink {
	s.ensureScanned()
	return s.external
}

// Warnings implements docdrift.ArtifactScanner.
func (s *Scanner) Warnings() []string {
	s.ensureScanned()
	return s.warnings
}

// ScanText implements docdrift.ArtifactScanner. It extracts local links
// from arbitrary text, attributing them to the given anchor.
func (s *Scanner) ScanText(text, anchor string) []docdrift.LocalLink {
	var links []docdrift.LocalLink
	for i, line := range strings.Split(text, "\n") {
		links = append(links, localLinksInLine(line, anchor, i+1)...)
	}
	return links
}

// ensureScanned walks the docs tree exactly once, populating every
// collection in a single pass over each file.
func (s *Scanner) ensureScanned() {
	if s.scanned {
		return
	}
	s.scanned = true
	s.scanCount++

	_ = filepath.WalkDir(s.docsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.docsRoot {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".md":
			s.scanMarkdownFile(path)
		case ".ipynb":
			s.scanNotebookFile(path)
		}
		return nil
	})
}

func (s *Scanner) scanMarkdownFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("could not read %s: %v", path, err))
		return
	}
	for i, line := range strings.Split(string(content), "\n") {
		lineNum := i + 1
		if m := crossRefRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			s.crossRefs = append(s.crossRefs, docdrift.CrossRef{
				Path: m[1],
				File: path,
				Line: lineNum,
			})
		}
		s.external = append(s.external, externalLinksInLine(line, path, lineNum)...)
		s.local = append(s.local, localLinksInLine(line, path, lineNum)...)
	}
}

func (s *Scanner) scanNotebookFile(path string) {
	cells, err := markdownCells(path)
	if err != nil {
		s.warnings = append(s.warnings, fmt.Sprintf("could not read notebook %s: %v", path, err))
		return
	}
	for _, cell := range cells {
		s.external = append(s.external, externalLinksInLine(cell.text, path, cell.index)...)
		s.local = append(s.local, localLinksInLine(cell.text, path, cell.index)...)
	}
}

// externalLinksInLine extracts markdown-style and bare http(s) links.
// A URL appearing both ways on the same line is recorded once, with the
// markdown link taking precedence.
func externalLinksInLine(line, file string, lineNum int) []docdrift.ExternalLink {
	var links []docdrift.ExternalLink
	seen := make(map[string]struct{})

	for _, m := range markdownLinkRe.FindAllStringSubmatch(line, -1) {
		links = append(links, docdrift.ExternalLink{URL: m[2], Text: m[1], File: file, Line: lineNum})
		seen[m[2]] = struct{}{}
	}
	for _, loc := range bareURLRe.FindAllStringIndex(line, -1) {
		if loc[0] > 0 && (line[loc[0]-1] == '(' || line[loc[0]-1] == '[') {
			continue
		}
		url := line[loc[0]:loc[1]]
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		links = append(links, docdrift.ExternalLink{URL: url, File: file, Line: lineNum})
	}
	return links
}

func localLinksInLine(line, file string, lineNum int) []docdrift.LocalLink {
	var links []docdrift.LocalLink
	for _, m := range localLinkRe.FindAllStringSubmatch(line, -1) {
		target := m[2]
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			continue
		}
		links = append(links, docdrift.LocalLink{Target: target, Text: m[1], File: file, Line: lineNum})
	}
	return links
}
