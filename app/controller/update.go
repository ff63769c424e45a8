package main

import (
	"net/http"

	"ingest/pkg/api"
	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
)

// Update overwrites an existing pipeline.
// The store response is returned as is, with status 200.
func (h handlers) Update(c echo.Context) error {
	name := c.Get(nameKey).(string)
	req := c.Get(requestKey).(api.PipelineRequest)

	ctx := context.WithPipelineName(context.FromContext(c.Request().Context()), name)
	res, err := h.svc.Update(ctx, name, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSONBlob(http.StatusOK, res)
}
