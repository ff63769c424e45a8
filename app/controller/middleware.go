package main

import (
	"net/http"

	"ingest/pkg/api"
	"ingest/pkg/util/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestID sets the request id on the request context, reusing the one given by the caller if any.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := req.Header.Get(api.HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Response().Header().Set(api.HeaderRequestID, id)
		ctx := context.WithRequestID(context.FromContext(req.Context()), id)
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

// licenseGuard rejects requests when the store license does not allow pipeline management.
func (h handlers) licenseGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.license == nil {
			return next(c)
		}
		ctx := context.FromContext(c.Request().Context())
		status, err := h.license.Check(ctx)
		if err != nil {
			return respondError(c, err)
		}
		if !status.Valid {
			ctx.Logger().Warn(status.Message)
			return c.JSON(http.StatusForbidden, newErrorResponse(http.StatusForbidden, status.Message))
		}
		return next(c)
	}
}
