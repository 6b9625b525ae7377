package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/murogrande/docdrift/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates a project with a docs directory, a guides subpage, a
// notebook, and a Python source file.
func writeTree(t *testing.T) (projectRoot, docsRoot string) {
	t.Helper()
	projectRoot = t.TempDir()
	docsRoot = filepath.Join(projectRoot, "docs")

	for _, dir := range []string{
		filepath.Join(docsRoot, "guides"),
		filepath.Join(docsRoot, "notebooks"),
		filepath.Join(projectRoot, "pkg"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	for _, file := range []string{
		filepath.Join(docsRoot, "index.md"),
		filepath.Join(docsRoot, "guides", "usage.md"),
		filepath.Join(docsRoot, "notebooks", "demo.ipynb"),
		filepath.Join(projectRoot, "pkg", "widgets.py"),
	} {
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	}
	return projectRoot, docsRoot
}

func TestLinkResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("relative to the anchor directory", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("usage.md", filepath.Join(docs, "guides", "other.md"))
		assert.True(t, res.Found)
		assert.Equal(t, filepath.Join(docs, "guides", "usage.md"), res.Path)
	})

	t.Run("parent paths fall back to the docs root", func(t *testing.T) {
		t.Parallel()

		project, docs := writeTree(t)
		r := fs.NewLinkResolver(project, docs)

		res := r.Resolve("../pkg/widgets.py", filepath.Join(docs, "guides", "usage.md"))
		assert.True(t, res.Found)
		assert.Equal(t, filepath.Join(project, "pkg", "widgets.py"), res.Path)
	})

	t.Run("site url form maps to the markdown page", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("guides/usage", filepath.Join(docs, "index.md"))
		assert.True(t, res.Found)
		assert.Equal(t, filepath.Join(docs, "guides", "usage.md"), res.Path)
	})

	t.Run("fragments are ignored for resolution", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("guides/usage.md#setup", filepath.Join(docs, "index.md"))
		assert.True(t, res.Found)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("guides/missing.md", filepath.Join(docs, "index.md"))
		assert.False(t, res.Found)
		assert.Empty(t, res.Reason)
	})
}

func TestLinkResolver_NotebookRules(t *testing.T) {
	t.Parallel()

	t.Run("markdown may link a notebook with the explicit extension", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("notebooks/demo.ipynb", filepath.Join(docs, "index.md"))
		assert.True(t, res.Found)
	})

	t.Run("markdown must not omit the notebook extension", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("notebooks/demo", filepath.Join(docs, "index.md"))
		assert.False(t, res.Found)
		assert.Equal(t, "notebook links require the explicit .ipynb extension", res.Reason)
	})

	t.Run("notebooks must not link other notebooks at all", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("demo.ipynb", filepath.Join(docs, "notebooks", "other.ipynb"))
		assert.False(t, res.Found)
		assert.Equal(t, "notebook sources must not link to other notebooks", res.Reason)

		res = r.Resolve("demo", filepath.Join(docs, "notebooks", "other.ipynb"))
		assert.False(t, res.Found)
		assert.Equal(t, "notebook sources must not link to other notebooks", res.Reason)
	})

	t.Run("notebooks may still link markdown pages", func(t *testing.T) {
		t.Parallel()

		_, docs := writeTree(t)
		r := fs.NewLinkResolver(filepath.Dir(docs), docs)

		res := r.Resolve("../index.md", filepath.Join(docs, "notebooks", "demo.ipynb"))
		assert.True(t, res.Found)
	})
}
