package routes

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"webnotas/cmd/internal/http/handler"
	mw "webnotas/cmd/internal/http/middleware"
	"webnotas/cmd/internal/metrics"
)

// NewServer builds the echo instance serving the dashboard.
func NewServer(renderer echo.Renderer, dashboardRoute *handler.DashboardRoute, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.BodyLimit("1M"))

	pages := e.Group("", mw.NoStore())
	pages.GET("/", dashboardRoute.Index)
	pages.GET("/partials/jobs", dashboardRoute.JobsPartial)
	pages.POST("/companies", dashboardRoute.CreateCompany)
	pages.POST("/actions", dashboardRoute.RowAction)

	e.GET("/documents/xml", dashboardRoute.DownloadXML)

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	return e
}
