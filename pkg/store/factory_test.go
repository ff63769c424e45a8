package store

import (
	"os"
	"strings"
	"testing"

	"ingest/pkg/util/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	require.NoError(t, config.ReadConfig(strings.NewReader(`{"store":{"type":"inmemory","licenseType":"gold"}}`)))
	defer config.ReadConfig(strings.NewReader(`{}`))

	s, err := NewFromConfig("store")
	require.NoError(t, err)
	_, isInMemory := s.(*inMemory)
	assert.True(t, isInMemory)
	assert.Equal(t, "gold", s.(*inMemory).license.Type)

	// Env overrides the store type
	os.Setenv(envStoreType, "unknown")
	defer os.Unsetenv(envStoreType)
	_, err = NewFromConfig("store")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New(InMemoryType, &InMemoryConfig{})
	require.NoError(t, err)

	_, err = New(InMemoryType, InMemoryConfig{})
	require.Error(t, err)

	_, err = New(Type("nope"), nil)
	require.Error(t, err)
}
