package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrExtractionNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get extraction: %w", ErrExtractionNotFound)))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("extraction not found")))
	assert.False(t, IsNotFoundError(nil))
}

func TestErrExtractionNotFoundMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "entity not found: extraction", ErrExtractionNotFound.Error())
}
