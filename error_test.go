package docdrift_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/murogrande/docdrift"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdrift.ErrorCode(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := docdrift.Errorf(docdrift.ENOTFOUND, "package %q not found", "pkg")
		assert.Equal(t, docdrift.ENOTFOUND, docdrift.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("discover: %w", docdrift.Errorf(docdrift.EINVALID, "bad root"))
		assert.Equal(t, docdrift.EINVALID, docdrift.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docdrift.EINTERNAL, docdrift.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := docdrift.Errorf(docdrift.ENOTFOUND, "package %q not found", "pkg")
		assert.Equal(t, `package "pkg" not found`, docdrift.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docdrift.ErrorMessage(errors.New("boom")))
	})
}
