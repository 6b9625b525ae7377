package docdrift

// CrossRef is a cross-reference directive (`::: dotted.path`) found in a
// documentation page, naming a code symbol for inline rendering.
type CrossRef struct {
	// Path is the dotted path captured verbatim from the directive.
	Path string `json:"path"`

	// File is the documentation page containing the directive.
	File string `json:"file"`

	// Line is the 1-based line number (or cell index for notebooks).
	Line int `json:"line"`
}

// LocalLink is a link to a local file found in documentation text.
type LocalLink struct {
	// Target is the raw link target as written, e.g. "../src/utils.py".
	Target string `json:"target"`

	// Text is the link label, empty for bare paths.
	Text string `json:"text"`

	File string `json:"file"`
	Line int    `json:"line"`
}

// ExternalLink is an http(s) link found in documentation text.
type ExternalLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	File string `json:"file"`
	Line int    `json:"line"`
}

// NavPath is one file path referenced by the navigation manifest.
type NavPath struct {
	// Path is relative to the documentation root.
	Path string `json:"path"`

	// File is the manifest that referenced it.
	File string `json:"file"`
}

// ArtifactScanner extracts documentation artifacts from a docs tree.
// Scanning is idempotent: the underlying sources are read and
// pattern-matched at most once per scanner regardless of which collection
// is requested first.
type ArtifactScanner interface {
	// CrossRefs returns every cross-reference directive in the docs tree.
	CrossRefs() []CrossRef

	// LocalLinks returns every local file link in the docs tree.
	LocalLinks() []LocalLink

	// ExternalLinks returns every http(s) link in the docs tree.
	ExternalLinks() []ExternalLink

	// ScanText extracts local links from arbitrary text (e.g. a
	// docstring). The anchor is recorded as the link's owning file so the
	// caller controls resolution.
	ScanText(text, anchor string) []LocalLink

	// Warnings reports sources that could not be read.
	Warnings() []string
}
