package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/murogrande/docdrift"
)

// Ensure LoggingCatalog implements docdrift.SymbolCatalog.
var _ docdrift.SymbolCatalog = (*LoggingCatalog)(nil)

// LoggingCatalog wraps a SymbolCatalog with debug logging.
type LoggingCatalog struct {
	next   docdrift.SymbolCatalog
	logger *slog.Logger
}

// NewLoggingCatalog creates a new LoggingCatalog.
func NewLoggingCatalog(next docdrift.SymbolCatalog, logger *slog.Logger) *LoggingCatalog {
	return &LoggingCatalog{next: next, logger: logger}
}

// Discover delegates to the wrapped catalog and logs the operation.
func (c *LoggingCatalog) Discover(ctx context.Context, roots, exclude []string) (result *docdrift.DiscoveryResult, err error) {
	defer func(begin time.Time) {
		count := 0
		if result != nil {
			count = len(result.Symbols)
		}
		c.logger.Info("symbol discovery",
			"roots", roots,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Discover(ctx, roots, exclude)
}
