package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/murogrande/docdrift"
)

// Ensure LoggingValidator implements docdrift.LinkValidator.
var _ docdrift.LinkValidator = (*LoggingValidator)(nil)

// LoggingValidator wraps a LinkValidator with debug logging.
type LoggingValidator struct {
	next   docdrift.LinkValidator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next docdrift.LinkValidator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the operation.
func (v *LoggingValidator) Validate(ctx context.Context, urls []string) map[string]docdrift.LinkVerdict {
	begin := time.Now()
	verdicts := v.next.Validate(ctx, urls)
	broken := 0
	errored := 0
	for _, verdict := range verdicts {
		switch verdict.Status {
		case docdrift.LinkBroken:
			broken++
		case docdrift.LinkError:
			errored++
		}
	}
	v.logger.Info("link validation",
		"urls", len(urls),
		"broken", broken,
		"errors", errored,
		"duration", time.Since(begin),
	)
	return verdicts
}
