package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePipelineRequest(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"minimal", `{"description":"d","processors":[]}`, true},
		{"full", `{"description":"d","processors":[{"set":{}}],"version":1.5,"onFailure":[{"drop":{}}]}`, true},
		{"missing description", `{"processors":[]}`, false},
		{"missing processors", `{"description":"d"}`, false},
		{"processor not an object", `{"description":"d","processors":["set"]}`, false},
		{"version not a number", `{"description":"d","processors":[],"version":"1"}`, false},
		{"null onFailure", `{"description":"d","processors":[],"onFailure":null}`, false},
		{"unknown field", `{"description":"d","processors":[],"on_failure":[]}`, false},
		{"not json", `{"description":`, false},
		{"not an object", `[]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePipelineRequest([]byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.IsType(t, ErrValidation{}, err)
		})
	}
}

func TestValidationCollectsAllViolations(t *testing.T) {
	_, err := DecodePipelineRequest([]byte(`{"version":"x"}`))
	require.Error(t, err)
	verr, ok := err.(ErrValidation)
	require.True(t, ok)
	assert.Len(t, verr.Violations(), 3)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "processors")
}

func TestDecodeCreateRequest(t *testing.T) {
	name, req, err := DecodeCreateRequest([]byte(`{"name":"p1","description":"d","processors":[],"version":4}`))
	require.NoError(t, err)
	assert.Equal(t, "p1", name)
	assert.Equal(t, "d", req.Description)
	assert.True(t, req.Version.Present())

	_, _, err = DecodeCreateRequest([]byte(`{"description":"d","processors":[]}`))
	require.Error(t, err)

	_, _, err = DecodeCreateRequest([]byte(`{"name":"","description":"d","processors":[]}`))
	require.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("my-pipeline"))
	assert.NoError(t, ValidateName("  "))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("p*"))
	assert.Error(t, ValidateName("a,b"))
}
