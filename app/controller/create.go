package main

import (
	"net/http"

	"ingest/pkg/api"
	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

func (h handlers) Create(c echo.Context) error {
	name := c.Get(nameKey).(string)
	req := c.Get(requestKey).(api.PipelineRequest)

	ctx := context.WithPipelineName(context.FromContext(c.Request().Context()), name)
	res, err := h.svc.Create(ctx, name, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSONBlob(http.StatusOK, res)
}
