package main

import (
	"net/http"

	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

func (h handlers) List(c echo.Context) error {
	ctx := context.FromContext(c.Request().Context())
	pipelines, err := h.svc.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pipelines)
}
