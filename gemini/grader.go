// Package gemini implements docdrift.Grader using Google Gemini.
// The grader is an optional capability: a missing client yields
// EUNAVAILABLE at invocation time, never an import-time failure.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/murogrande/docdrift"
)

const model = "gemini-2.5-flash"

// Ensure Grader implements docdrift.Grader at compile time.
var _ docdrift.Grader = (*Grader)(nil)

// Grader reviews docstring quality with Gemini.
type Grader struct {
	client *genai.Client
}

// NewGrader creates a new Grader. A nil client is allowed and produces
// EUNAVAILABLE on use, so callers can wire the grader unconditionally.
func NewGrader(client *genai.Client) *Grader {
	return &Grader{client: client}
}

// Grade implements docdrift.Grader.
func (g *Grader) Grade(ctx context.Context, sym *docdrift.Symbol) ([]docdrift.QualityIssue, error) {
	if g.client == nil {
		return nil, docdrift.Errorf(docdrift.EUNAVAILABLE, "gemini client not configured (set GEMINI_API_KEY)")
	}
	if sym == nil || sym.Docstring == "" {
		return nil, nil
	}

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(sym)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdrift.Errorf(docdrift.EINTERNAL, "gemini returned nil result")
	}

	return ParseIssues(result.Text())
}

// graderResponse is the JSON shape the prompt asks the model for.
type graderResponse struct {
	Issues []struct {
		Severity   string `json:"severity"`
		Category   string `json:"category"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion"`
		Snippet    string `json:"snippet"`
	} `json:"issues"`
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// ParseIssues decodes the model's JSON response, tolerating markdown code
// fences around it.
func ParseIssues(response string) ([]docdrift.QualityIssue, error) {
	cleaned := stripFences(response)

	var parsed graderResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, docdrift.Errorf(docdrift.EINTERNAL, "could not parse grader response: %v", err)
	}

	issues := make([]docdrift.QualityIssue, 0, len(parsed.Issues))
	for _, issue := range parsed.Issues {
		issues = append(issues, docdrift.QualityIssue{
			Severity:   severity(issue.Severity),
			Category:   issue.Category,
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
			Snippet:    issue.Snippet,
		})
	}
	return issues, nil
}

func severity(s string) docdrift.QualitySeverity {
	switch docdrift.QualitySeverity(s) {
	case docdrift.SeverityCritical:
		return docdrift.SeverityCritical
	case docdrift.SeverityWarning:
		return docdrift.SeverityWarning
	default:
		return docdrift.SeveritySuggestion
	}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
