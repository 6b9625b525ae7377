package docdrift

import "context"

// QualitySeverity ranks a quality issue.
type QualitySeverity string

// Quality issue severities.
const (
	SeverityCritical   QualitySeverity = "critical"
	SeverityWarning    QualitySeverity = "warning"
	SeveritySuggestion QualitySeverity = "suggestion"
)

// QualityIssue is one docstring quality problem reported by a grader.
type QualityIssue struct {
	Severity QualitySeverity `json:"severity"`

	// Category is the issue type: "grammar", "clarity", "completeness",
	// "accuracy", or "style".
	Category string `json:"category"`

	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`

	// Snippet is the exact text with the issue, when the grader quoted it.
	Snippet string `json:"snippet,omitempty"`
}

// Grader evaluates docstring quality. It is an optional capability:
// implementations that are not configured return EUNAVAILABLE at
// invocation time, and the orchestrator degrades to a warning rather
// than failing the run.
type Grader interface {
	// Grade reviews the symbol's docstring and returns any issues found.
	Grade(ctx context.Context, sym *Symbol) ([]QualityIssue, error)
}
