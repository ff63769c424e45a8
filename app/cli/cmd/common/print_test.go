package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ingest/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPipelines(t *testing.T) {
	v := json.Number("3")
	var buf bytes.Buffer
	PrintPipelines(&buf, []api.Pipeline{
		{Name: "logs", Description: "parse logs", Processors: []api.Processor{{"grok": map[string]interface{}{}}, {"set": map[string]interface{}{}}}, Version: &v},
		{Name: "metrics", Processors: []api.Processor{}},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "VERSION", "PROCESSORS", "DESCRIPTION"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"logs", "3", "2", "parse", "logs"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"metrics", "-", "0"}, strings.Fields(lines[2]))

	buf.Reset()
	PrintPipelines(&buf, nil)
	assert.Equal(t, "No ingest pipeline found\n", buf.String())
}

func TestPrintPipeline(t *testing.T) {
	var buf bytes.Buffer
	err := PrintPipeline(&buf, api.Pipeline{
		Name:        "logs",
		Description: "parse logs",
		Processors:  []api.Processor{{"set": map[string]interface{}{"field": "f"}}},
		OnFailure:   []api.Processor{{"drop": map[string]interface{}{}}},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Name:          logs")
	assert.Contains(t, out, `1.  set  {"field":"f"}`)
	assert.Contains(t, out, "On failure:")
	assert.Contains(t, out, `1.  drop  {}`)
}

func TestPrintDeleteResult(t *testing.T) {
	var buf bytes.Buffer
	PrintDeleteResult(&buf, api.DeleteResult{
		ItemsDeleted: []string{"a"},
		Errors: []api.DeleteError{
			{Name: "b", Error: map[string]interface{}{"status": 404, "error": map[string]interface{}{"reason": "pipeline [b] is missing"}}},
			{Name: "c", Error: map[string]interface{}{"message": "connection refused"}},
		},
	})
	assert.Equal(t, "Pipeline a deleted\n"+
		"Pipeline b not deleted: pipeline [b] is missing\n"+
		"Pipeline c not deleted: connection refused\n", buf.String())
}
