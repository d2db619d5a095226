package ui

import (
	"fmt"
	"slices"
	"strconv"

	"aidash/internal/dashboard"
	"aidash/internal/display"
	"aidash/internal/engine"
	"aidash/internal/models"

	"github.com/goccy/go-json"
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

const (
	echartsURL  = "https://cdn.jsdelivr.net/npm/echarts@5.5.0/dist/echarts.min.js"
	datastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"
	formID      = "filters"
)

type pageData struct {
	Title      string
	WorldURL   string
	Tab        string
	Dims       models.Dimensions
	Selection  engine.Selection
	Options    dashboard.Options
	KPIs       engine.KPIs
	Preview    models.Table
	Charts     []models.Chart
	Industries []string // present in the filtered view, for the tool drill-downs
	Countries  []string
}

func dashboardPage(p pageData) (Node, error) {
	payload, err := json.Marshal(p.Charts)
	if err != nil {
		return nil, fmt.Errorf("encode charts: %w", err)
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(p.Title)),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src(echartsURL)),
			Script(Type("module"), Src(datastarURL)),
		),
		Body(
			Attr("data-world-url", p.WorldURL),
			Main(Class("app-shell"),
				filterSidebar(p),
				Section(Class("app-main"),
					Header(Class("topbar"),
						H1(Class("page-title"), Text("🌍 "+p.Title)),
						P(Class("muted"), Text("Exploring the influence of AI-generated content across industries and countries")),
					),
					tabbedContent(p),
				),
			),
			Script(Type("application/json"), ID("dashboard-data"), Raw(string(payload))),
			Script(Src("/static/dashboard.js")),
		),
	), nil
}

func filterSidebar(p pageData) Node {
	years := make([]string, len(p.Dims.Years))
	for i, y := range p.Dims.Years {
		years[i] = strconv.Itoa(y)
	}
	selectedYears := make([]string, len(p.Selection.Years))
	for i, y := range p.Selection.Years {
		selectedYears[i] = strconv.Itoa(y)
	}

	return Aside(Class("app-sidebar"),
		H2(Text("Filters")),
		Form(ID(formID), Method("get"), Action("/"),
			Input(Type("hidden"), Name(dashboard.ParamSubmitted), Value("1")),
			multiSelect(dashboard.ParamYear, "Select Years", years, selectedYears, p.Selection.Years == nil),
			multiSelect(dashboard.ParamCountry, "Select Countries", p.Dims.Countries, p.Selection.Countries, p.Selection.Countries == nil),
			multiSelect(dashboard.ParamIndustry, "Select Industries", p.Dims.Industries, p.Selection.Industries, p.Selection.Industries == nil),
			Button(Type("submit"), Class("btn"), Text("Apply")),
			A(Href("/"), Class("reset"), Text("Reset")),
		),
	)
}

// multiSelect renders a filter list. With all set every option starts
// selected, matching the "everything" default.
func multiSelect(name, label string, options, selected []string, all bool) Node {
	id := "filter-" + name
	opts := make([]Node, 0, len(options))
	for _, o := range options {
		opts = append(opts, Option(Value(o), If(all || slices.Contains(selected, o), Selected()), Text(o)))
	}
	return Div(Class("field"),
		Label(Attr("for", id), Text(label)),
		Select(ID(id), Name(name), Multiple(), Attr("size", strconv.Itoa(min(len(options), 8))), Group(opts)),
	)
}

func tabbedContent(p pageData) Node {
	tabs := make([]Node, 0, len(dashboard.Tabs))
	for _, t := range dashboard.Tabs {
		tabs = append(tabs, Label(Class("tab"),
			Input(Type("radio"), Name(dashboard.ParamTab), Value(t.Key), Attr("form", formID),
				If(t.Key == p.Tab, Checked()), data.Bind("tab")),
			Span(Text(t.Label)),
		))
	}

	charts := make(map[string][]models.Chart)
	for _, c := range p.Charts {
		charts[c.Tab] = append(charts[c.Tab], c)
	}

	return Div(
		data.Signals(map[string]any{"tab": p.Tab}),
		Nav(Class("tabs"), Group(tabs)),
		tabSection("overview", p.Tab, overviewSection(p, charts["overview"])),
		tabSection("geo", p.Tab, geoSection(p, charts["geo"])),
		tabSection("industry", p.Tab, industrySection(p, charts["industry"])),
		tabSection("trends", p.Tab, trendsSection(p, charts["trends"])),
		tabSection("deep", p.Tab, deepSection(p, charts["deep"])),
	)
}

// tabSection starts hidden unless active so the page does not flash every
// tab before the signals load.
func tabSection(key, active string, body ...Node) Node {
	return Section(Class("tab-panel"), Attr("data-tab", key),
		If(key != active, StyleAttr("display: none")),
		data.Show("$tab === '"+key+"'"),
		Group(body),
	)
}

func overviewSection(p pageData, charts []models.Chart) Node {
	k := p.KPIs
	return Group([]Node{
		H2(Text("Dataset Overview")),
		Div(Class("kpis"),
			kpiCard("Average AI Adoption", display.Percent(k.AvgAdoption)),
			kpiCard("Average Job Impact", display.Percent(k.AvgJobLoss)),
			kpiCard("Average Revenue Impact", display.Percent(k.AvgRevenue)),
			kpiCard("Average Consumer Trust", display.Percent(k.AvgTrust)),
		),
		Div(Class("kpis"),
			kpiCard("Total AI Content Volume", display.Volume(k.TotalContentVolume)),
			kpiCard("Avg Collaboration Rate", display.Percent(k.AvgCollaboration)),
			kpiCard("Countries Covered", strconv.Itoa(k.Countries)),
			kpiCard("Industries Covered", strconv.Itoa(k.Industries)),
		),
		If(p.Preview.Columns != nil, H3(Text("Raw Data Preview"))),
		previewTable(p.Preview),
		chartGrid(charts),
	})
}

func geoSection(p pageData, charts []models.Chart) Node {
	return Group([]Node{
		H2(Text("Geographical Analysis")),
		chartBox(charts, "country_choropleth"),
		chartBox(charts, "country_content_volume"),
		H3(Text("Country Comparison")),
		metricSelect(dashboard.ParamCountryMetric, "Select metric to compare", dashboard.ComparisonMetrics, p.Options.CountryMetric),
		chartBox(charts, "country_compare"),
	})
}

func industrySection(p pageData, charts []models.Chart) Node {
	return Group([]Node{
		H2(Text("Industry Analysis")),
		chartBox(charts, "industry_sunburst"),
		chartBox(charts, "industry_adoption_box"),
		H3(Text("Industry Comparison")),
		metricSelect(dashboard.ParamIndustryMetric, "Select metric for industry comparison", dashboard.ComparisonMetrics, p.Options.IndustryMetric),
		chartBox(charts, "industry_compare"),
	})
}

func trendsSection(p pageData, charts []models.Chart) Node {
	groupings := make([]Node, 0, len(dashboard.TrendGroupings))
	for _, d := range dashboard.TrendGroupings {
		groupings = append(groupings, Label(Class("radio"),
			Input(Type("radio"), Name(dashboard.ParamGroupBy), Value(d.Key()), Attr("form", formID),
				If(d == p.Options.TrendGroupBy, Checked()), Attr("onchange", "this.form.submit()")),
			Span(Text(d.Column())),
		))
	}

	return Group([]Node{
		H2(Text("Temporal Trends")),
		chartBox(charts, "country_trend"),
		chartBox(charts, "industry_trend"),
		H3(Text("Metric Trends Over Time")),
		Div(Class("controls"),
			metricSelect(dashboard.ParamTrendMetric, "Select metric to analyze over time", dashboard.ComparisonMetrics, p.Options.TrendMetric),
			Div(Class("field"), Span(Text("Group by")), Group(groupings)),
		),
		chartBox(charts, "metric_trend"),
	})
}

func deepSection(p pageData, charts []models.Chart) Node {
	return Group([]Node{
		H2(Text("Deep Dive Analysis")),
		H3(Text("Correlation Analysis")),
		Div(Class("controls"),
			metricSelect(dashboard.ParamX, "X-axis variable", dashboard.ScatterMetrics, p.Options.ScatterX),
			metricSelect(dashboard.ParamY, "Y-axis variable", dashboard.ScatterMetrics, p.Options.ScatterY),
		),
		chartBox(charts, "correlation_scatter"),
		H3(Text("AI Tool Popularity")),
		chartBox(charts, "tool_popularity"),
		Div(Class("controls"),
			valueSelect(dashboard.ParamToolIndustry, "Select industry for tool analysis", p.Industries, p.Options.ToolIndustry),
			valueSelect(dashboard.ParamToolCountry, "Select country for tool analysis", p.Countries, p.Options.ToolCountry),
		),
		Div(Class("chart-row"),
			chartBox(charts, "industry_tools"),
			chartBox(charts, "country_tools"),
		),
		H3(Text("Regulation Impact")),
		chartBox(charts, "regulation_adoption_box"),
		chartBox(charts, "regulation_job_loss_box"),
		H3(Text("Correlation Heatmap (All Metrics)")),
		chartBox(charts, "correlation_heatmap"),
	})
}

func kpiCard(label, value string) Node {
	return Div(Class("kpi"),
		Span(Class("kpi-label"), Text(label)),
		Strong(Class("kpi-value"), Text(value)),
	)
}

func previewTable(t models.Table) Node {
	if t.Columns == nil {
		return Group(nil)
	}
	if len(t.Rows) == 0 {
		return P(Class("muted empty"), Text("No records match the current filters."))
	}
	head := make([]Node, 0, len(t.Columns))
	for _, c := range t.Columns {
		head = append(head, Th(Text(c)))
	}
	rows := make([]Node, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := make([]Node, 0, len(r))
		for _, v := range r {
			cells = append(cells, Td(Text(formatCell(v))))
		}
		rows = append(rows, Tr(Group(cells)))
	}
	return Div(Class("table-wrap"),
		Table(THead(Tr(Group(head))), TBody(Group(rows))),
		P(Class("muted"), Text(fmt.Sprintf("Showing %d of %d records.", len(t.Rows), t.Total))),
	)
}

// chartGrid renders every chart of a tab in registry order.
func chartGrid(charts []models.Chart) Node {
	nodes := make([]Node, 0, len(charts))
	for _, c := range charts {
		nodes = append(nodes, chartDiv(c))
	}
	return Group(nodes)
}

func chartBox(charts []models.Chart, id string) Node {
	i := slices.IndexFunc(charts, func(c models.Chart) bool { return c.ID == id })
	if i < 0 {
		return Group(nil)
	}
	return chartDiv(charts[i])
}

func chartDiv(c models.Chart) Node {
	if c.Empty {
		return Div(Class("chart-card"), ID("chart-"+c.ID),
			H4(Text(c.Title)),
			P(Class("muted empty"), Text("No data for the current selection.")),
		)
	}
	height := c.Options.Height
	if height == 0 {
		height = 420
	}
	return Div(Class("chart-card"),
		Div(Class("chart"), ID("chart-"+c.ID), Attr("data-chart", c.ID),
			StyleAttr(fmt.Sprintf("height: %dpx", height))),
	)
}

func metricSelect(name, label string, choices []engine.Metric, selected engine.Metric) Node {
	opts := make([]Node, 0, len(choices))
	for _, m := range choices {
		opts = append(opts, Option(Value(m.Key()), If(m == selected, Selected()), Text(m.Column())))
	}
	return controlSelect(name, label, opts)
}

// valueSelect keeps a chosen value that the filters have since excluded as
// the selected option, so the control agrees with the (empty) chart below it.
func valueSelect(name, label string, values []string, selected string) Node {
	opts := make([]Node, 0, len(values)+1)
	if selected != "" && !slices.Contains(values, selected) {
		opts = append(opts, Option(Value(selected), Selected(), Text(selected)))
	}
	for i, v := range values {
		isSelected := v == selected || (selected == "" && i == 0)
		opts = append(opts, Option(Value(v), If(isSelected, Selected()), Text(v)))
	}
	return controlSelect(name, label, opts)
}

// controlSelect belongs to the filter form so a change resubmits the page
// with every filter and control intact.
func controlSelect(name, label string, opts []Node) Node {
	id := "control-" + name
	return Div(Class("field"),
		Label(Attr("for", id), Text(label)),
		Select(ID(id), Name(name), Attr("form", formID), Attr("onchange", "this.form.submit()"), Group(opts)),
	)
}
