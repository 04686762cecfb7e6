package offsync_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/offsync"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := offsync.Errorf(offsync.ESTATUS, "HTTP %d for %s", 500, "https://example.com")

	assert.Equal(t, offsync.ESTATUS, offsync.ErrorCode(err))
	assert.Equal(t, "HTTP 500 for https://example.com", offsync.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("sync: %w", offsync.Errorf(offsync.EDECODE, "bad charset"))

	assert.Equal(t, offsync.EDECODE, offsync.ErrorCode(err))
	assert.Equal(t, "bad charset", offsync.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, offsync.EINTERNAL, offsync.ErrorCode(err))
	assert.Equal(t, "Internal error.", offsync.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, offsync.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, offsync.ErrorMessage(nil))
}
