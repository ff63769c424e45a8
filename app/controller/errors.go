package main

import (
	"net/http"

	"ingest/pkg/store"
	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned for errors raised by the service itself.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func newErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	}
}

// respondError writes err to the response.
// Errors reported by the store keep the store status and body, anything else is an internal error.
func respondError(c echo.Context, err error) error {
	ctx := context.FromContext(c.Request().Context())
	if se, ok := store.IsStoreError(err); ok {
		ctx.Logger().Infof("store rejected request: %s", err)
		return c.JSON(se.Status, se.Body)
	}
	ctx.Logger().Errorf("internal error: %s", err)
	return c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, err.Error()))
}

// badRequest writes a 400 response for an invalid request.
func badRequest(c echo.Context, err error) error {
	context.FromContext(c.Request().Context()).Logger().Debugf("bad request: %s", err)
	return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, err.Error()))
}
