package main

import (
	"io/ioutil"
	"strings"

	"ingest/pkg/api"
	"ingest/pkg/client"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Keys of the validated request values set on the echo context.
const (
	nameKey    = "pipelineName"
	namesKey   = "pipelineNames"
	requestKey = "pipelineRequest"
)

func validateName(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(client.NameParam)
		if err := api.ValidateName(name); err != nil {
			return badRequest(c, err)
		}
		c.Set(nameKey, name)
		return next(c)
	}
}

// validateNames validates the comma separated names of the delete route.
func validateNames(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var names []string
		for _, n := range strings.Split(c.Param(client.NameParam), ",") {
			if n == "" {
				continue
			}
			if err := api.ValidateName(n); err != nil {
				return badRequest(c, err)
			}
			names = append(names, n)
		}
		if len(names) == 0 {
			return badRequest(c, errors.New("[request params.names]: expected at least one pipeline name"))
		}
		c.Set(namesKey, names)
		return next(c)
	}
}

func decodeUpdate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := ioutil.ReadAll(c.Request().Body)
		if err != nil {
			return respondError(c, errors.Wrap(err, "cannot read request body"))
		}
		req, err := api.DecodePipelineRequest(body)
		if err != nil {
			return badRequest(c, err)
		}
		c.Set(requestKey, req)
		return next(c)
	}
}

func decodeCreate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := ioutil.ReadAll(c.Request().Body)
		if err != nil {
			return respondError(c, errors.Wrap(err, "cannot read request body"))
		}
		name, req, err := api.DecodeCreateRequest(body)
		if err != nil {
			return badRequest(c, err)
		}
		if err := api.ValidateName(name); err != nil {
			return badRequest(c, err)
		}
		c.Set(nameKey, name)
		c.Set(requestKey, req)
		return next(c)
	}
}
