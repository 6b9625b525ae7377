package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/mock"
	driftslog "github.com/murogrande/docdrift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalog_Discover(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SymbolCatalog{
			DiscoverFn: func(ctx context.Context, roots, exclude []string) (*docdrift.DiscoveryResult, error) {
				return &docdrift.DiscoveryResult{
					Symbols: []*docdrift.Symbol{
						{Name: "Widget", Module: "pkg"},
						{Name: "Gadget", Module: "pkg"},
					},
				}, nil
			},
		}

		catalog := driftslog.NewLoggingCatalog(inner, logger)
		result, err := catalog.Discover(context.Background(), []string{"pkg"}, nil)

		require.NoError(t, err)
		assert.Len(t, result.Symbols, 2)
		output := buf.String()
		assert.Contains(t, output, "symbol discovery")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SymbolCatalog{
			DiscoverFn: func(ctx context.Context, roots, exclude []string) (*docdrift.DiscoveryResult, error) {
				return nil, errors.New("package not found")
			},
		}

		catalog := driftslog.NewLoggingCatalog(inner, logger)
		_, err := catalog.Discover(context.Background(), []string{"missing"}, nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "symbol discovery")
		assert.Contains(t, output, "err=\"package not found\"")
	})
}
