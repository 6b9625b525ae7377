package docdrift

import "context"

// LinkStatus is the outcome of validating one link.
type LinkStatus string

// Link statuses. Broken is an authoritative negative (confirmed absent or
// denied); Error is inconclusive (timeout, DNS failure) and is reported
// separately so callers can retry or ignore it.
const (
	LinkOK     LinkStatus = "ok"
	LinkBroken LinkStatus = "broken"
	LinkError  LinkStatus = "error"
)

// LinkVerdict is the result of validating one external link.
type LinkVerdict struct {
	URL    string     `json:"url"`
	Status LinkStatus `json:"status"`

	// StatusCode is the HTTP status, 0 when the request never completed.
	StatusCode int `json:"statusCode,omitempty"`

	// Reason explains broken/error verdicts.
	Reason string `json:"reason,omitempty"`
}

// LinkValidator checks external links for reachability.
type LinkValidator interface {
	// Validate probes every unique URL in urls and returns a verdict per
	// URL. The input is deduplicated before dispatch; each unique URL is
	// probed exactly once per run even if it appears in many artifacts.
	// Failure of one probe never aborts the others.
	Validate(ctx context.Context, urls []string) map[string]LinkVerdict
}

// LocalResolution is the outcome of resolving a local file link.
type LocalResolution struct {
	Found bool

	// Path is the resolved file path when found.
	Path string

	// Reason explains failures beyond plain absence, e.g. a notebook
	// linked without its extension.
	Reason string
}

// LocalLinkResolver resolves local file links against the project tree.
type LocalLinkResolver interface {
	// Resolve resolves a raw link target relative to the artifact that
	// contains it. anchor is the artifact's own path; its extension
	// decides which linking rules apply (markdown vs notebook sources).
	Resolve(rawTarget, anchor string) LocalResolution
}
