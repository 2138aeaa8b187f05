package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("rating", "must be between %d and %d", 0, 10)
	assert.Equal(t, "rating: must be between 0 and 10", err.Error())

	wrapped := fmt.Errorf("save rating: %w", err)
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsStorage(wrapped))

	bare := &ValidationError{Message: "invalid step: foo"}
	assert.Equal(t, "invalid step: foo", bare.Error())
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("upsert: %w", NewStorageError("upsert", cause))

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
