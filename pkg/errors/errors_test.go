package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewUpstreamUnavailableError("region seeding failed", cause)

	assert.Equal(t, "UPSTREAM_UNAVAILABLE: region seeding failed: dial tcp: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_ErrorWithoutCause(t *testing.T) {
	err := NewNotFoundError("user with id u-1 not found")
	assert.Equal(t, "NOT_FOUND: user with id u-1 not found", err.Error())
}

func TestTypeOf_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("recommend: %w", NewNotFoundError("missing"))

	assert.Equal(t, ErrorTypeNotFound, TypeOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))
}

func TestTypeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}
