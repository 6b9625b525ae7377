// Package fs resolves local documentation links against the project
// filesystem, applying the rendering tool's path and extension rules.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/murogrande/docdrift"
)

// Compile-time interface verification.
var _ docdrift.LocalLinkResolver = (*LinkResolver)(nil)

// LinkResolver resolves raw link targets from documentation artifacts.
// Candidate roots are tried in order: the anchor's own directory, the
// docs root for parent-relative paths, the project root for absolute
// paths, and finally the rendered-site URL form.
type LinkResolver struct {
	projectRoot string
	docsRoot    string
}

// NewLinkResolver creates a LinkResolver for a project and its docs
// directory.
func NewLinkResolver(projectRoot, docsRoot string) *LinkResolver {
	return &LinkResolver{projectRoot: projectRoot, docsRoot: docsRoot}
}

// Resolve implements docdrift.LocalLinkResolver.
//
// Notebook rules are asymmetric on purpose, mirroring the rendering
// tool's restriction: a markdown source must spell out the .ipynb
// extension when linking a notebook, and a notebook source must never
// link another notebook at all.
func (r *LinkResolver) Resolve(rawTarget, anchor string) docdrift.LocalResolution {
	target := rawTarget
	if i := strings.Index(target, "#"); i >= 0 {
		target = target[:i]
	}
	target = strings.TrimSuffix(target, "/")
	if target == "" {
		return docdrift.LocalResolution{Found: true, Path: anchor}
	}

	anchorDir := filepath.Dir(anchor)
	fromNotebook := filepath.Ext(anchor) == ".ipynb"

	if fromNotebook && strings.HasSuffix(target, ".ipynb") {
		return docdrift.LocalResolution{
			Reason: "notebook sources must not link to other notebooks",
		}
	}

	// (1) Relative to the anchor artifact's directory.
	if p := filepath.Join(anchorDir, target); exists(p) {
		return docdrift.LocalResolution{Found: true, Path: p}
	}

	// (2) Relative to the docs root, for parent-directory paths.
	if strings.HasPrefix(target, "..") {
		if p := filepath.Join(r.docsRoot, target); exists(p) {
			return docdrift.LocalResolution{Found: true, Path: p}
		}
	}

	// (3) Absolute from the project root.
	if strings.HasPrefix(target, "/") {
		if p := filepath.Join(r.projectRoot, strings.TrimPrefix(target, "/")); exists(p) {
			return docdrift.LocalResolution{Found: true, Path: p}
		}
	}

	// (4) As a rendered-site URL path: the site serves pages without the
	// .md extension.
	page := strings.TrimSuffix(target, ".md")
	for _, base := range []string{anchorDir, r.docsRoot} {
		if p := filepath.Join(base, page+".md"); exists(p) {
			return docdrift.LocalResolution{Found: true, Path: p}
		}
	}

	// An extensionless target backed by a notebook is not accepted: the
	// .ipynb extension must be explicit (and notebook sources may not
	// link notebooks at all).
	for _, base := range []string{anchorDir, r.docsRoot} {
		if exists(filepath.Join(base, page+".ipynb")) {
			if fromNotebook {
				return docdrift.LocalResolution{
					Reason: "notebook sources must not link to other notebooks",
				}
			}
			return docdrift.LocalResolution{
				Reason: "notebook links require the explicit .ipynb extension",
			}
		}
	}

	return docdrift.LocalResolution{}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
