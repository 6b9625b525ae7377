package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	t.Parallel()

	t.Run("groups findings by kind with locations", func(t *testing.T) {
		t.Parallel()

		report := &docdrift.Report{ID: "run-1"}
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingMissingDoc,
			Subject:  "pkg.Widget",
			Location: "pkg/__init__.py:12",
			Message:  "public class pkg.Widget has no cross-reference in the docs",
		})
		report.Add(docdrift.Finding{
			Kind:     docdrift.FindingBrokenReference,
			Subject:  "pkg.Missing",
			Location: "docs/api.md:3",
			Message:  "cross-reference pkg.Missing does not resolve to any symbol",
		})
		report.Warn("excluded submodule \"pkg.old\" matched nothing")

		var buf bytes.Buffer
		writeText(&buf, report)

		output := buf.String()
		assert.Contains(t, output, "Undocumented symbols (1):")
		assert.Contains(t, output, "pkg/__init__.py:12")
		assert.Contains(t, output, "Broken cross-references (1):")
		assert.Contains(t, output, "warning: excluded submodule")
		assert.Contains(t, output, "2 issue(s) found")
	})

	t.Run("reports a clean run with external link count", func(t *testing.T) {
		t.Parallel()

		report := &docdrift.Report{ID: "run-2", TotalExternalLinks: 7}

		var buf bytes.Buffer
		writeText(&buf, report)

		assert.Contains(t, buf.String(), "No issues found (7 external links checked)")
	})
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	report := &docdrift.Report{ID: "run-3"}
	report.Add(docdrift.Finding{
		Kind:    docdrift.FindingBrokenExternalLink,
		Subject: "https://example.com/gone",
		Message: "broken: HTTP 404",
	})

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, report))

	var decoded docdrift.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-3", decoded.ID)
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, docdrift.FindingBrokenExternalLink, decoded.Findings[0].Kind)
}
