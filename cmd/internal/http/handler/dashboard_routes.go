package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"webnotas/cmd/internal/dashboard"
	"webnotas/cmd/internal/domain/entity"
	"webnotas/cmd/internal/infrastructure/aws/storage"
	"webnotas/cmd/internal/utils/apierror"
)

const (
	pageTemplate = "dashboard.html"
	jobsTemplate = "jobs"
)

type DashboardRoute struct {
	Dashboard    *dashboard.Dashboard
	XMLStore     storage.XMLStore
	PollInterval time.Duration
}

// NewDashboardRoute builds the browser-facing handlers. xmlStore may be nil,
// XML downloads are then disabled.
func NewDashboardRoute(d *dashboard.Dashboard, xmlStore storage.XMLStore, pollInterval time.Duration) *DashboardRoute {
	if pollInterval <= 0 {
		pollInterval = dashboard.DefaultPollInterval
	}
	return &DashboardRoute{
		Dashboard:    d,
		XMLStore:     xmlStore,
		PollInterval: pollInterval,
	}
}

type tableData struct {
	Columns []string
	Rows    []dashboard.Row
	State   string
}

type pageData struct {
	Alerts          []string
	Form            map[string]string
	Companies       tableData
	Jobs            tableData
	Documents       tableData
	DocumentsHeader string
	XMLEnabled      bool
	PollSeconds     int
}

func (h *DashboardRoute) Index(c echo.Context) error {
	data := h.page()
	data.Alerts = h.Dashboard.Alerts.Drain()
	return c.Render(http.StatusOK, pageTemplate, data)
}

// JobsPartial serves the job table alone, for the page's own polling.
func (h *DashboardRoute) JobsPartial(c echo.Context) error {
	return c.Render(http.StatusOK, jobsTemplate, h.page())
}

// CreateCompany forwards every submitted field as-is. Failures are alerted by
// the registry and shown on the page the browser is redirected to.
func (h *DashboardRoute) CreateCompany(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewSimple(http.StatusBadRequest, "Malformed form body"))
	}

	fields := make(map[string]string, len(params))
	for name, values := range params {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	if err := h.Dashboard.Registry.Submit(detach(c), fields); err != nil {
		log.Debugf("company submission failed: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RowAction dispatches a click on one of the companies table buttons.
func (h *DashboardRoute) RowAction(c echo.Context) error {
	role := dashboard.Role(c.FormValue("role"))
	companyID := entity.ID(c.FormValue("company_id"))

	err := h.Dashboard.Dispatcher.Dispatch(detach(c), role, companyID)
	switch {
	case errors.Is(err, dashboard.ErrUnknownAction):
		return c.JSON(http.StatusBadRequest, apierror.NewUnknownActionError(string(role)))
	case errors.Is(err, dashboard.ErrMissingCompany):
		return c.JSON(http.StatusBadRequest, apierror.MissingCompanyIDError)
	case err != nil:
		log.Warnf("row action %s for company %s failed: %v", role, companyID, err)
		h.Dashboard.Alerts.Alert(dashboard.Message(err))
	}

	if role == dashboard.RoleDocuments {
		return c.Redirect(http.StatusSeeOther, "/#documents")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *DashboardRoute) DownloadXML(c echo.Context) error {
	if h.XMLStore == nil {
		return c.JSON(http.StatusNotFound, apierror.XMLStorageOffError)
	}

	xmlPath := c.QueryParam("path")
	if xmlPath == "" {
		return c.JSON(http.StatusBadRequest, apierror.MissingXMLPathError)
	}

	obj, err := h.XMLStore.Open(c.Request().Context(), xmlPath)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		return c.JSON(http.StatusBadRequest, apierror.InvalidXMLPathError)
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, apierror.NotFoundError)
	case err != nil:
		log.Errorf("failed to open xml %s: %v", xmlPath, err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	defer func() {
		_ = obj.Body.Close()
	}()

	c.Response().Header().Set(echo.HeaderContentDisposition, "inline")
	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}

func (h *DashboardRoute) page() pageData {
	d := h.Dashboard
	return pageData{
		Form:            d.Registry.Form().Values(),
		Companies:       tableOf(d.Registry.Table(), d.Registry.State()),
		Jobs:            tableOf(d.Jobs.Table(), d.Jobs.State()),
		Documents:       tableOf(d.Documents.Table(), d.Documents.State()),
		DocumentsHeader: d.Documents.Header(),
		XMLEnabled:      h.XMLStore != nil,
		PollSeconds:     max(1, int(h.PollInterval/time.Second)),
	}
}

func tableOf(t *dashboard.Table, state dashboard.LoadState) tableData {
	return tableData{
		Columns: t.Columns(),
		Rows:    t.Rows(),
		State:   state.String(),
	}
}

// detach keeps upstream calls running when the browser goes away mid-request.
func detach(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}
