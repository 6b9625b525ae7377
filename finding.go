package docdrift

// FindingKind classifies one drift finding.
type FindingKind string

// Finding kinds.
const (
	FindingMissingDoc         FindingKind = "missing_doc"
	FindingBrokenReference    FindingKind = "broken_reference"
	FindingBrokenLocalLink    FindingKind = "broken_local_link"
	FindingBrokenExternalLink FindingKind = "broken_external_link"
	FindingBrokenNavPath      FindingKind = "broken_nav_path"
	FindingUndocumentedParam  FindingKind = "undocumented_param"
	FindingQuality            FindingKind = "quality"
)

// Finding is one detected inconsistency between code and documentation.
// Findings are immutable once appended to a report.
type Finding struct {
	Kind FindingKind `json:"kind"`

	// Subject identifies what the finding is about: a qualified symbol
	// name, a URL, or a link target.
	Subject string `json:"subject"`

	// Location is "file:line" where the issue was observed, when known.
	Location string `json:"location,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Report aggregates the findings of one run. The core never renders or
// prints a report; formatting and exit-code policy belong to the caller.
type Report struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	Findings []Finding `json:"findings"`

	// Warnings are non-fatal conditions observed during the run, e.g. a
	// submodule that failed to parse or a stale exclusion entry.
	Warnings []string `json:"warnings"`

	// TotalExternalLinks counts the external links examined, including
	// the ones that validated fine.
	TotalExternalLinks int `json:"totalExternalLinks"`
}

// Add appends a finding to the report.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Warn appends a warning message to the report.
func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasIssues reports whether any findings were recorded. Warnings alone do
// not count as issues.
func (r *Report) HasIssues() bool {
	return len(r.Findings) > 0
}

// ByKind returns the findings of one kind, in insertion order.
func (r *Report) ByKind(kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
