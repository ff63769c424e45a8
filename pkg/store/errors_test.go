package store

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStoreError(t *testing.T) {
	err := NotFoundError("pipeline [p1]")
	se, ok := IsStoreError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.True(t, IsNotFound(err))

	// Wrapping keeps the classification
	wrapped := errors.Wrap(err, "cannot get pipeline")
	se, ok = IsStoreError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.True(t, IsNotFound(wrapped))

	conflict := ConflictError("exists")
	assert.False(t, IsNotFound(conflict))
	se, ok = IsStoreError(conflict)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, se.Status)

	_, ok = IsStoreError(errors.New("connection refused"))
	assert.False(t, ok)
	assert.False(t, IsNotFound(nil))
}
