package store

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// StoreError is the error returned when the store rejected a request.
// Status is the status code reported by the store and Body its diagnostic payload, both kept verbatim.
// Any other error returned by a Store is an internal failure (transport, serialization...).
type StoreError struct {
	Status int
	Body   interface{}
}

func (err *StoreError) Error() string {
	return fmt.Sprintf("store responded with status %d", err.Status)
}

// IsStoreError returns the StoreError carried by err, if any.
func IsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound returns true if err was reported by the store as not found.
func IsNotFound(err error) bool {
	se, ok := IsStoreError(err)
	return ok && se.Status == http.StatusNotFound
}

// NotFoundError returns a StoreError with an Elasticsearch shaped not found body.
func NotFoundError(what string) error {
	return &StoreError{
		Status: http.StatusNotFound,
		Body: map[string]interface{}{
			"status": http.StatusNotFound,
			"error": map[string]interface{}{
				"type":   "resource_not_found_exception",
				"reason": fmt.Sprintf("%s is missing", what),
			},
		},
	}
}

// ConflictError returns a StoreError reporting that what already exists.
func ConflictError(message string) error {
	return &StoreError{
		Status: http.StatusConflict,
		Body: map[string]interface{}{
			"statusCode": http.StatusConflict,
			"error":      http.StatusText(http.StatusConflict),
			"message":    message,
		},
	}
}
