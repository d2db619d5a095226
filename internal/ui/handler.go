// Package ui serves the server-rendered dashboard page and its assets.
package ui

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"

	"aidash/internal/config"
	"aidash/internal/dashboard"
	"aidash/internal/engine"

	"github.com/labstack/echo/v4"
	gomponents "maragu.dev/gomponents"
)

//go:embed static
var staticFS embed.FS

type Handler struct {
	store  *engine.ColumnStore
	cfg    config.UIConfig
	logger *slog.Logger
}

func NewHandler(store *engine.ColumnStore, cfg config.UIConfig, logger *slog.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	e.StaticFS("/static", static)
	e.GET("/", h.Dashboard)
}

// Dashboard renders the page for the query's filters and chart controls.
// Bad control values fall back to their defaults; a malformed year is a 400.
func (h *Handler) Dashboard(c echo.Context) error {
	q := c.QueryParams()
	sel, err := dashboard.ParseSelection(q)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	opts, _ := dashboard.ParseOptions(q, false)

	view := engine.Filter(h.store, sel)
	p := pageData{
		Title:      h.cfg.Title,
		WorldURL:   h.cfg.WorldGeoJSONURL,
		Tab:        activeTab(q.Get(dashboard.ParamTab)),
		Dims:       dashboard.DimensionsOf(h.store),
		Selection:  sel,
		Options:    opts,
		KPIs:       engine.ComputeKPIs(view),
		Charts:     dashboard.Build(view, opts),
		Industries: view.Distinct(engine.DimIndustry),
		Countries:  view.Distinct(engine.DimCountry),
	}
	// A zero preview size hides the table.
	if h.cfg.PreviewRows > 0 {
		p.Preview = dashboard.Records(view, 0, h.cfg.PreviewRows)
	}
	h.logger.Debug("dashboard rendered", "records", view.Len(), "tab", p.Tab)

	node, err := dashboardPage(p)
	if err != nil {
		return err
	}
	return renderHTML(c, http.StatusOK, node)
}

func activeTab(key string) string {
	if slices.ContainsFunc(dashboard.Tabs, func(t dashboard.Tab) bool { return t.Key == key }) {
		return key
	}
	return dashboard.Tabs[0].Key
}

func renderHTML(c echo.Context, status int, node gomponents.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}
