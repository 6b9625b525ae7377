package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/mock"
	driftslog "github.com/murogrande/docdrift/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("logs broken and error counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.LinkValidator{
			ValidateFn: func(ctx context.Context, urls []string) map[string]docdrift.LinkVerdict {
				return map[string]docdrift.LinkVerdict{
					"https://example.com/ok":     {URL: "https://example.com/ok", Status: docdrift.LinkOK, StatusCode: 200},
					"https://example.com/gone":   {URL: "https://example.com/gone", Status: docdrift.LinkBroken, StatusCode: 404},
					"https://example.com/flaky":  {URL: "https://example.com/flaky", Status: docdrift.LinkError, Reason: "timeout"},
					"https://example.com/flaky2": {URL: "https://example.com/flaky2", Status: docdrift.LinkError, Reason: "timeout"},
				}
			},
		}

		validator := driftslog.NewLoggingValidator(inner, logger)
		verdicts := validator.Validate(context.Background(), []string{
			"https://example.com/ok",
			"https://example.com/gone",
			"https://example.com/flaky",
			"https://example.com/flaky2",
		})

		assert.Len(t, verdicts, 4)
		output := buf.String()
		assert.Contains(t, output, "link validation")
		assert.Contains(t, output, "urls=4")
		assert.Contains(t, output, "broken=1")
		assert.Contains(t, output, "errors=2")
		assert.Contains(t, output, "duration=")
	})
}
