package context

import (
	"bytes"
	gocontext "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	c := WithRequestID(Background(), "req-1")
	c = WithPipelineName(c, "my-pipeline")

	// Wrapping in a standard context keeps the identifiers
	std := gocontext.Context(c)
	back := FromContext(std)
	assert.Equal(t, "req-1", back.RequestID())
	assert.Equal(t, "my-pipeline", back.PipelineName())

	// Plain go context
	plain := FromContext(gocontext.Background())
	assert.Empty(t, plain.RequestID())
	assert.Empty(t, plain.PipelineName())
}

func TestLoggerFields(t *testing.T) {
	c := WithPipelineName(WithRequestID(Background(), "req-1"), "p1")
	e := c.Logger()
	assert.Equal(t, "req-1", e.Data["request_id"])
	assert.Equal(t, "p1", e.Data["pipeline"])

	e = Background().Logger()
	assert.Empty(t, e.Data)
}

func TestConfigureLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	require.NoError(t, ConfigureLogger("debug", FormatJSON))
	WithRequestID(Background(), "req-2").Logger().Debug("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"request_id":"req-2"`)

	require.Error(t, ConfigureLogger("loud", FormatText))
	require.Error(t, ConfigureLogger("info", "xml"))
	require.NoError(t, ConfigureLogger("info", FormatText))
}
