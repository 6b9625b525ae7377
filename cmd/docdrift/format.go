package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/murogrande/docdrift"
)

// sectionOrder fixes the rendering order of finding kinds in text output.
var sectionOrder = []struct {
	kind  docdrift.FindingKind
	title string
}{
	{docdrift.FindingMissingDoc, "Undocumented symbols"},
	{docdrift.FindingBrokenReference, "Broken cross-references"},
	{docdrift.FindingBrokenLocalLink, "Broken local links"},
	{docdrift.FindingBrokenNavPath, "Broken nav entries"},
	{docdrift.FindingBrokenExternalLink, "Broken external links"},
	{docdrift.FindingUndocumentedParam, "Undocumented parameters"},
	{docdrift.FindingQuality, "Docstring quality"},
}

// writeText renders the report grouped by finding kind.
func writeText(w io.Writer, report *docdrift.Report) {
	for _, section := range sectionOrder {
		findings := report.ByKind(section.kind)
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", section.title, len(findings))
		for _, f := range findings {
			if f.Location != "" {
				fmt.Fprintf(w, "  %s\n    %s\n", f.Location, f.Message)
			} else {
				fmt.Fprintf(w, "  %s\n", f.Message)
			}
		}
		fmt.Fprintln(w)
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	if report.HasIssues() {
		fmt.Fprintf(w, "%d issue(s) found", len(report.Findings))
	} else {
		fmt.Fprint(w, "No issues found")
	}
	if report.TotalExternalLinks > 0 {
		fmt.Fprintf(w, " (%d external links checked)", report.TotalExternalLinks)
	}
	fmt.Fprintln(w)
}

// writeJSON renders the report as indented JSON.
func writeJSON(w io.Writer, report *docdrift.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
