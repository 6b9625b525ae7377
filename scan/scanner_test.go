package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexMD = `# API

::: pkg.Widget

See the [guide](guide.md) and the [source](../pkg/widgets.py).
Visit [the site](https://example.com/docs) or https://example.com/plain for more.
`

const notebookJSON = `{
  "cells": [
    {"cell_type": "code", "source": ["print('https://example.com/in-code')\n"]},
    {"cell_type": "markdown", "source": ["Load [data](./data.json) from https://example.com/nb\n"]},
    {"cell_type": "markdown", "source": "Back to [the index](../index.md)."}
  ]
}
`

func writeDocs(t *testing.T) string {
	t.Helper()
	docs := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docs, "index.md"), []byte(indexMD), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "notebooks"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "notebooks", "demo.ipynb"), []byte(notebookJSON), 0o644))
	return docs
}

func TestScanner_CrossRefs(t *testing.T) {
	t.Parallel()

	docs := writeDocs(t)
	s := scan.NewScanner(docs)

	refs := s.CrossRefs()
	require.Len(t, refs, 1)
	assert.Equal(t, "pkg.Widget", refs[0].Path)
	assert.Equal(t, filepath.Join(docs, "index.md"), refs[0].File)
	assert.Equal(t, 3, refs[0].Line)
}

func TestScanner_ExternalLinks(t *testing.T) {
	t.Parallel()

	t.Run("markdown and bare urls from markdown files", func(t *testing.T) {
		t.Parallel()

		s := scan.NewScanner(writeDocs(t))

		byURL := make(map[string]docdrift.ExternalLink)
		for _, link := range s.ExternalLinks() {
			byURL[link.URL] = link
		}

		site, ok := byURL["https://example.com/docs"]
		require.True(t, ok)
		assert.Equal(t, "the site", site.Text)
		assert.Equal(t, 6, site.Line)

		_, ok = byURL["https://example.com/plain"]
		assert.True(t, ok)
	})

	t.Run("notebook code cells contribute nothing", func(t *testing.T) {
		t.Parallel()

		s := scan.NewScanner(writeDocs(t))

		for _, link := range s.ExternalLinks() {
			assert.NotEqual(t, "https://example.com/in-code", link.URL)
		}
	})

	t.Run("notebook markdown cells are scanned with cell indexes", func(t *testing.T) {
		t.Parallel()

		docs := writeDocs(t)
		s := scan.NewScanner(docs)

		var nb *docdrift.ExternalLink
		links := s.ExternalLinks()
		for i := range links {
			if links[i].URL == "https://example.com/nb" {
				nb = &links[i]
			}
		}
		require.NotNil(t, nb)
		assert.Equal(t, filepath.Join(docs, "notebooks", "demo.ipynb"), nb.File)
		assert.Equal(t, 2, nb.Line) // second cell, counting the code cell
	})
}

func TestScanner_LocalLinks(t *testing.T) {
	t.Parallel()

	docs := writeDocs(t)
	s := scan.NewScanner(docs)

	targets := make(map[string]docdrift.LocalLink)
	for _, link := range s.LocalLinks() {
		targets[link.Target] = link
	}

	assert.Contains(t, targets, "guide.md")
	assert.Contains(t, targets, "../pkg/widgets.py")
	assert.Contains(t, targets, "./data.json")
	assert.Contains(t, targets, "../index.md")
	assert.NotContains(t, targets, "https://example.com/docs")
}

func TestScanner_SinglePass(t *testing.T) {
	t.Parallel()

	s := scan.NewScanner(writeDocs(t))

	_ = s.CrossRefs()
	_ = s.LocalLinks()
	_ = s.ExternalLinks()
	_ = s.Warnings()

	assert.Equal(t, 1, s.ScanCount())
}

func TestScanner_ScanText(t *testing.T) {
	t.Parallel()

	s := scan.NewScanner(t.TempDir())

	links := s.ScanText("First line.\nSee [usage](../guides/usage.md) here.", "docs/api.md")
	require.Len(t, links, 1)
	assert.Equal(t, "../guides/usage.md", links[0].Target)
	assert.Equal(t, "docs/api.md", links[0].File)
	assert.Equal(t, 2, links[0].Line)
}
