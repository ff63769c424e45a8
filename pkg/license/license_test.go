package license

import (
	gocontext "context"
	"testing"
	"time"

	"ingest/pkg/store"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type licenseStore struct {
	store.Store
	license store.License
	err     error
	calls   int
}

func (s *licenseStore) License(ctx gocontext.Context) (store.License, error) {
	s.calls++
	return s.license, s.err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		minimum string
		license store.License
		valid   bool
	}{
		{"basic allowed", "basic", store.License{Status: "active", Type: "basic"}, true},
		{"gold above basic", "basic", store.License{Status: "active", Type: "gold"}, true},
		{"basic below gold", "gold", store.License{Status: "active", Type: "basic"}, false},
		{"trial grants all", "enterprise", store.License{Status: "active", Type: "trial"}, true},
		{"expired", "basic", store.License{Status: "expired", Type: "platinum"}, false},
		{"unknown type", "basic", store.License{Status: "active", Type: "oss"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			conf.Minimum = tt.minimum
			c, err := NewChecker(&licenseStore{license: tt.license}, conf)
			require.NoError(t, err)

			st, err := c.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.valid, st.Valid)
			if !tt.valid {
				assert.NotEmpty(t, st.Message)
			}
		})
	}
}

func TestCheckCache(t *testing.T) {
	s := &licenseStore{license: store.License{Status: "active", Type: "basic"}}
	c, err := NewChecker(s, DefaultConfig())
	require.NoError(t, err)
	now := time.Unix(1577836800, 0)
	c.now = func() time.Time { return now }

	_, err = c.Check(context.Background())
	require.NoError(t, err)
	_, err = c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.calls)

	now = now.Add(time.Minute)
	_, err = c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.calls)
}

func TestCheckErrors(t *testing.T) {
	s := &licenseStore{err: store.NotFoundError("license")}
	c, err := NewChecker(s, DefaultConfig())
	require.NoError(t, err)

	_, err = c.Check(context.Background())
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))

	// Failures are not cached
	s.err = errors.New("connection refused")
	_, err = c.Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, s.calls)

	_, err = NewChecker(s, Config{Minimum: "diamond"})
	require.Error(t, err)
}

func TestCheckDisabled(t *testing.T) {
	s := &licenseStore{err: errors.New("unreachable")}
	c, err := NewChecker(s, Config{Minimum: "basic"})
	require.NoError(t, err)

	st, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Valid)
	assert.Equal(t, 0, s.calls)
}
