package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent(t *testing.T) {
	e := New(TypeUpdated, "my-pipeline", "req-1")
	assert.Equal(t, "pipeline.updated", e.RoutingKey())
	assert.Equal(t, "UPDATED for pipeline my-pipeline", e.String())
	assert.False(t, e.Time.IsZero())
}
