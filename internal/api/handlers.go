package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"aidash/internal/dashboard"
	"aidash/internal/engine"

	"github.com/labstack/echo/v4"
)

const defaultRecordLimit = 100

type Handler struct {
	store  *engine.ColumnStore
	logger *slog.Logger
}

func NewHandler(store *engine.ColumnStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/dimensions", h.GetDimensions)
	api.GET("/kpis", h.GetKPIs)
	api.GET("/records", h.GetRecords)
	api.GET("/charts", h.GetCharts)
	api.GET("/charts/:id", h.GetChart)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// view filters the store by the request's selection.
func (h *Handler) view(c echo.Context) (engine.View, error) {
	sel, err := dashboard.ParseSelection(c.QueryParams())
	if err != nil {
		return engine.View{}, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return engine.Filter(h.store, sel), nil
}

func options(c echo.Context) (dashboard.Options, error) {
	o, err := dashboard.ParseOptions(c.QueryParams(), true)
	if err != nil {
		return o, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return o, nil
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"records": h.store.Len(),
	})
}

func (h *Handler) GetDimensions(c echo.Context) error {
	return c.JSON(http.StatusOK, dashboard.DimensionsOf(h.store))
}

func (h *Handler) GetKPIs(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard.KPIsOf(v))
}

// filtered rows, paged
func (h *Handler) GetRecords(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	limit, offset := getPaginationParams(c, defaultRecordLimit)
	return c.JSON(http.StatusOK, dashboard.Records(v, offset, limit))
}

func (h *Handler) GetCharts(c echo.Context) error {
	sel, err := dashboard.ParseSelection(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	o, err := options(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard.Dashboard(h.store, sel, o))
}

func (h *Handler) GetChart(c echo.Context) error {
	id := c.Param("id")
	v, err := h.view(c)
	if err != nil {
		return err
	}
	o, err := options(c)
	if err != nil {
		return err
	}
	chart, ok := dashboard.BuildChart(id, v, o)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown chart %q", id))
	}
	h.logger.Debug("chart built", "id", id, "rows", len(chart.Rows), "records", v.Len())
	return c.JSON(http.StatusOK, chart)
}
