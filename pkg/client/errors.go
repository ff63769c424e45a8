package client

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// HTTPError is the error returned when the server answers with a non 2xx status.
// Body holds the response body as returned by the server.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (err HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", err.StatusCode, http.StatusText(err.StatusCode), err.Message())
}

// Message extracts a human readable message from the body.
// Both the service error body and the raw store error body are understood.
func (err HTTPError) Message() string {
	if !gjson.ValidBytes(err.Body) {
		return string(err.Body)
	}
	for _, path := range []string{"message", "error.reason", "error"} {
		if r := gjson.GetBytes(err.Body, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return string(err.Body)
}

// IsNotFound returns whether the error is a 404 returned by the server.
func IsNotFound(err error) bool {
	var httpErr HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
