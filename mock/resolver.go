package mock

import (
	"context"

	"github.com/murogrande/docdrift"
)

var _ docdrift.ReferenceResolver = (*ReferenceResolver)(nil)

// ReferenceResolver is a mock implementation of docdrift.ReferenceResolver.
type ReferenceResolver struct {
	ResolveFn func(path string) bool
}

func (r *ReferenceResolver) Resolve(path string) bool {
	return r.ResolveFn(path)
}

var _ docdrift.LocalLinkResolver = (*LocalLinkResolver)(nil)

// LocalLinkResolver is a mock implementation of docdrift.LocalLinkResolver.
type LocalLinkResolver struct {
	ResolveFn func(rawTarget, anchor string) docdrift.LocalResolution
}

func (r *LocalLinkResolver) Resolve(rawTarget, anchor string) docdrift.LocalResolution {
	return r.ResolveFn(rawTarget, anchor)
}

var _ docdrift.LinkValidator = (*LinkValidator)(nil)

// LinkValidator is a mock implementation of docdrift.LinkValidator.
type LinkValidator struct {
	ValidateFn func(ctx context.Context, urls []string) map[string]docdrift.LinkVerdict
}

func (v *LinkValidator) Validate(ctx context.Context, urls []string) map[string]docdrift.LinkVerdict {
	return v.ValidateFn(ctx, urls)
}

var _ docdrift.Grader = (*Grader)(nil)

// Grader is a mock implementation of docdrift.Grader.
type Grader struct {
	GradeFn func(ctx context.Context, sym *docdrift.Symbol) ([]docdrift.QualityIssue, error)
}

func (g *Grader) Grade(ctx context.Context, sym *docdrift.Symbol) ([]docdrift.QualityIssue, error) {
	return g.GradeFn(ctx, sym)
}
