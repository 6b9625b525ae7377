package mock

import "github.com/murogrande/docdrift"

var _ docdrift.ArtifactScanner = (*ArtifactScanner)(nil)

// ArtifactScanner is a mock implementation of docdrift.ArtifactScanner.
// Nil funcs return empty collections, so tests only set what they use.
type ArtifactScanner struct {
	CrossRefsFn     func() []docdrift.CrossRef
	LocalLinksFn    func() []docdrift.LocalLink
	ExternalLinksFn func() []docdrift.ExternalLink
	ScanTextFn      func(text, anchor string) []docdrift.LocalLink
	WarningsFn      func() []string
}

func (s *ArtifactScanner) CrossRefs() []docdrift.CrossRef {
	if s.CrossRefsFn == nil {
		return nil
	}
	return s.CrossRefsFn()
}

func (s *ArtifactScanner) LocalLinks() []docdrift.LocalLink {
	if s.LocalLinksFn == nil {
		return nil
	}
	return s.LocalLinksFn()
}

func (s *ArtifactScanner) ExternalLinks() []docdrift.ExternalLink {
	if s.ExternalLinksFn == nil {
		return nil
	}
	return s.ExternalLinksFn()
}

func (s *ArtifactScanner) ScanText(text, anchor string) []docdrift.LocalLink {
	if s.ScanTextFn == nil {
		return nil
	}
	return s.ScanTextFn(text, anchor)
}

func (s *ArtifactScanner) Warnings() []string {
	if s.WarningsFn == nil {
		return nil
	}
	return s.WarningsFn()
}
