package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateActiveSessionErrorUnwrap(t *testing.T) {
	err := &DuplicateActiveSessionError{SessionId: "session-1"}

	assert.True(t, errors.Is(err, ErrDuplicateActiveSession))
	assert.Contains(t, err.Error(), "session-1")

	var dup *DuplicateActiveSessionError
	assert.True(t, errors.As(error(err), &dup))
	assert.Equal(t, "session-1", dup.SessionId)
}

func TestValidationf(t *testing.T) {
	err := Validationf("amount must be >= 0, got %d", -5)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "amount must be >= 0")
}
