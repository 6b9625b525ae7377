package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/murogrande/docdrift"
)

// BuildConfig returns the GenerateContentConfig for grading calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a technical documentation reviewer for Python libraries. " +
					"Review docstrings for grammar, clarity, completeness, and accuracy. " +
					"Respond only with the JSON structure you are asked for.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt asking for a structured docstring
// review of one symbol.
func BuildPrompt(sym *docdrift.Symbol) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Review the docstring of `%s` (%s).\n\n", sym.QualifiedName(), sym.Kind)

	if len(sym.Params) > 0 {
		names := make([]string, len(sym.Params))
		for i, p := range sym.Params {
			names[i] = p.Name
		}
		fmt.Fprintf(&sb, "Parameters: %s\n\n", strings.Join(names, ", "))
	}

	sb.WriteString("Docstring:\n```\n")
	sb.WriteString(sym.Docstring)
	sb.WriteString("\n```\n\n")

	sb.WriteString(`Check for grammar and spelling errors, unclear phrasing, passive voice, and missing information. Respond ONLY with valid JSON (no markdown):
{
  "issues": [
    {
      "severity": "critical|warning|suggestion",
      "category": "grammar|clarity|completeness|accuracy|style",
      "message": "plain explanation of the issue",
      "suggestion": "concrete fix, before/after where useful",
      "snippet": "exact text with the issue"
    }
  ],
  "score": 0,
  "summary": "one sentence assessment"
}`)
	return sb.String()
}
