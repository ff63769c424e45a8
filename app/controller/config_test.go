package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"ingest/pkg/util/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	require.NoError(t, config.ReadConfig(strings.NewReader(`{"port": 9000, "license": {"minimum": "gold", "cacheTTL": "1m"}}`)))
	defer config.ReadConfig(strings.NewReader(`{}`))

	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_FORMAT")

	conf, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, conf.Port)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, "json", conf.LogFormat)
	assert.True(t, conf.License.Enabled)
	assert.Equal(t, "gold", conf.License.Minimum)
	assert.Equal(t, time.Minute, conf.License.CacheTTL)
}
