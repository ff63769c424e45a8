package main

import (
	"net/http"

	"ingest/pkg/client"
	"ingest/pkg/license"
	"ingest/pkg/pipeline"
	"ingest/pkg/util/context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/neko-neko/echo-logrus/v2/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type handlers struct {
	svc     pipeline.Service
	license *license.Checker
}

// newServer returns the echo server with every route set up.
// checker may be nil, pipeline routes are then not guarded.
func newServer(svc pipeline.Service, checker *license.Checker, g prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	l := log.MyLogger{Logger: context.Background().Logger().Logger}
	e.Logger = &l
	e.HideBanner = true
	e.HidePort = true

	h := handlers{
		svc:     svc,
		license: checker,
	}

	e.Use(middleware.Recover())
	e.Use(requestID)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	// Routes sharing a path share the param name, delete accepts comma separated names.
	// Requests are validated before the license is checked.
	pipelines := e.Group(client.BasePath)
	pipelines.GET("", h.List, h.licenseGuard)
	pipelines.POST("", h.Create, decodeCreate, h.licenseGuard)
	pipelines.GET("/:"+client.NameParam, h.Get, validateName, h.licenseGuard)
	pipelines.PUT("/:"+client.NameParam, h.Update, validateName, decodeUpdate, h.licenseGuard)
	pipelines.DELETE("/:"+client.NameParam, h.Delete, validateNames, h.licenseGuard)
	return e
}
