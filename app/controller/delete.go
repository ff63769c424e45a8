package main

import (
	"net/http"

	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

func (h handlers) Delete(c echo.Context) error {
	names := c.Get(namesKey).([]string)
	ctx := context.FromContext(c.Request().Context())
	return c.JSON(http.StatusOK, h.svc.Delete(ctx, names))
}
