package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"ingest/app/cli/cmd/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGet(t *testing.T, status int, body string) (string, error) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer srv.Close()
	client.Server = srv.URL
	defer func() { client.Server = "" }()

	var out bytes.Buffer
	command := NewGetCommand()
	command.SetOut(&out)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"p1"})
	err := command.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	out, err := runGet(t, http.StatusOK, `{"name":"p1","description":"d","processors":[{"set":{"field":"f"}}]}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:          p1")

	_, err = runGet(t, http.StatusNotFound, `{"status":404,"error":{"reason":"pipeline [p1] is missing"}}`)
	require.Error(t, err)
	assert.Equal(t, "pipeline p1 not found", err.Error())

	_, err = runGet(t, http.StatusForbidden, `{"statusCode":403,"error":"Forbidden","message":"expired"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
