package main

import (
	"net/http"

	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

func (h handlers) Get(c echo.Context) error {
	name := c.Get(nameKey).(string)
	ctx := context.WithPipelineName(context.FromContext(c.Request().Context()), name)
	p, err := h.svc.Get(ctx, name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
