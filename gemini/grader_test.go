package gemini_test

import (
	"context"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrader_Unconfigured(t *testing.T) {
	t.Parallel()

	g := gemini.NewGrader(nil)

	_, err := g.Grade(context.Background(), &docdrift.Symbol{
		Name: "Widget", Module: "pkg", Docstring: "A widget.",
	})

	require.Error(t, err)
	assert.Equal(t, docdrift.EUNAVAILABLE, docdrift.ErrorCode(err))
	assert.Contains(t, docdrift.ErrorMessage(err), "GEMINI_API_KEY")
}

func TestParseIssues(t *testing.T) {
	t.Parallel()

	t.Run("plain json", func(t *testing.T) {
		t.Parallel()

		issues, err := gemini.ParseIssues(`{
			"issues": [
				{"severity": "critical", "category": "accuracy", "message": "describes removed behavior"},
				{"severity": "warning", "category": "grammar", "message": "subject-verb disagreement", "snippet": "the widgets renders"}
			],
			"score": 4,
			"summary": "needs work"
		}`)

		require.NoError(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, docdrift.SeverityCritical, issues[0].Severity)
		assert.Equal(t, "accuracy", issues[0].Category)
		assert.Equal(t, "the widgets renders", issues[1].Snippet)
	})

	t.Run("json wrapped in code fences", func(t *testing.T) {
		t.Parallel()

		issues, err := gemini.ParseIssues("```json\n{\"issues\": [{\"severity\": \"suggestion\", \"category\": \"style\", \"message\": \"prefer active voice\"}]}\n```")

		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, docdrift.SeveritySuggestion, issues[0].Severity)
	})

	t.Run("unknown severity degrades to suggestion", func(t *testing.T) {
		t.Parallel()

		issues, err := gemini.ParseIssues(`{"issues": [{"severity": "blocker", "category": "clarity", "message": "unclear"}]}`)

		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, docdrift.SeveritySuggestion, issues[0].Severity)
	})

	t.Run("non-json response is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseIssues("I could not review this docstring.")

		require.Error(t, err)
		assert.Equal(t, docdrift.EINTERNAL, docdrift.ErrorCode(err))
	})

	t.Run("empty issue list", func(t *testing.T) {
		t.Parallel()

		issues, err := gemini.ParseIssues(`{"issues": [], "score": 10, "summary": "excellent"}`)

		require.NoError(t, err)
		assert.Empty(t, issues)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt(&docdrift.Symbol{
		Name:      "Widget.render",
		Module:    "pkg.widgets",
		Kind:      docdrift.KindMethod,
		Params:    []docdrift.Param{{Name: "size"}, {Name: "color", HasDefault: true}},
		Docstring: "Render the widget.",
	})

	assert.Contains(t, prompt, "pkg.widgets.Widget.render")
	assert.Contains(t, prompt, "Parameters: size, color")
	assert.Contains(t, prompt, "Render the widget.")
	assert.Contains(t, prompt, `"severity"`)
}
