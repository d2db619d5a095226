package dashboard

import (
	"fmt"
	"strconv"

	"aidash/internal/engine"
	"aidash/internal/models"
)

// Tab groups charts on the page.
type Tab struct {
	Key   string
	Label string
}

var Tabs = []Tab{
	{Key: "overview", Label: "📊 Overview"},
	{Key: "geo", Label: "🌐 Geographical"},
	{Key: "industry", Label: "🏭 Industry"},
	{Key: "trends", Label: "📈 Trends"},
	{Key: "deep", Label: "🔍 Deep Dive"},
}

type chartSpec struct {
	id    string
	tab   string
	build func(v engine.View, o Options) models.Chart
}

// registry is the dashboard layout, in page order.
var registry = []chartSpec{
	{"adoption_hist", "overview", func(v engine.View, _ Options) models.Chart {
		c := histogram(v, engine.MetricAdoption, 20, "#1292ED", "AI Adoption Rate Distribution")
		c.Options.BarGap = 0.2
		return c
	}},
	{"job_loss_hist", "overview", func(v engine.View, _ Options) models.Chart {
		c := histogram(v, engine.MetricJobLoss, 15, "#ff7f0e", "Job Loss Due to AI Distribution")
		c.Options.BarGap = 0.3
		return c
	}},
	{"country_choropleth", "geo", func(v engine.View, _ Options) models.Chart {
		return choropleth(v, engine.MetricAdoption)
	}},
	{"country_content_volume", "geo", func(v engine.View, _ Options) models.Chart {
		return rankedBar(v, engine.DimCountry, engine.MetricContentVolume, "#dfed1f",
			"AI-Generated Content Volume by Country")
	}},
	{"country_compare", "geo", func(v engine.View, o Options) models.Chart {
		return rankedBar(v, engine.DimCountry, o.CountryMetric, "#855bef",
			fmt.Sprintf("%s by Country", o.CountryMetric.Column()))
	}},
	{"industry_sunburst", "industry", func(v engine.View, _ Options) models.Chart {
		return sunburst(v)
	}},
	{"industry_adoption_box", "industry", func(v engine.View, _ Options) models.Chart {
		return box(v, engine.DimIndustry, engine.MetricAdoption, "#9467bd",
			"AI Adoption Rate Distribution by Industry")
	}},
	{"industry_compare", "industry", func(v engine.View, o Options) models.Chart {
		return rankedBar(v, engine.DimIndustry, o.IndustryMetric, "#a2f088",
			fmt.Sprintf("%s by Industry", o.IndustryMetric.Column()))
	}},
	{"country_trend", "trends", func(v engine.View, _ Options) models.Chart {
		return trend(v, engine.MetricAdoption, engine.DimCountry, dark24,
			"AI Adoption Rate Over Time by Country")
	}},
	{"industry_trend", "trends", func(v engine.View, _ Options) models.Chart {
		return trend(v, engine.MetricAdoption, engine.DimIndustry, light24,
			"AI Adoption Rate Over Time by Industry")
	}},
	{"metric_trend", "trends", func(v engine.View, o Options) models.Chart {
		return trend(v, o.TrendMetric, o.TrendGroupBy, vivid,
			fmt.Sprintf("%s Over Time by %s", o.TrendMetric.Column(), o.TrendGroupBy.Column()))
	}},
	{"correlation_scatter", "deep", func(v engine.View, o Options) models.Chart {
		return scatter(v, o.ScatterX, o.ScatterY)
	}},
	{"tool_popularity", "deep", func(v engine.View, _ Options) models.Chart {
		c := toolCounts(v, "Most Used AI Tools Overall")
		c.Type = models.Bar
		c.Colors = []string{"#e8bbdb"}
		return c
	}},
	{"industry_tools", "deep", func(v engine.View, o Options) models.Chart {
		industry := pick(v, engine.DimIndustry, o.ToolIndustry)
		c := toolCounts(v.Where(engine.DimIndustry, industry), toolTitle(industry, " Industry"))
		c.Type = models.Pie
		c.Options.Donut = true
		return c
	}},
	{"country_tools", "deep", func(v engine.View, o Options) models.Chart {
		country := pick(v, engine.DimCountry, o.ToolCountry)
		c := toolCounts(v.Where(engine.DimCountry, country), toolTitle(country, ""))
		c.Type = models.Pie
		c.Options.Donut = true
		c.Colors = set3
		return c
	}},
	{"regulation_adoption_box", "deep", func(v engine.View, _ Options) models.Chart {
		return box(v, engine.DimRegulation, engine.MetricAdoption, "#17becf",
			"AI Adoption Rate by Regulation Strictness")
	}},
	{"regulation_job_loss_box", "deep", func(v engine.View, _ Options) models.Chart {
		return box(v, engine.DimRegulation, engine.MetricJobLoss, "#bcbd22",
			"Job Loss Due to AI by Regulation Strictness")
	}},
	{"correlation_heatmap", "deep", func(v engine.View, _ Options) models.Chart {
		return heatmap(v)
	}},
}

// ChartIDs lists every chart in page order.
func ChartIDs() []string {
	ids := make([]string, len(registry))
	for i, s := range registry {
		ids[i] = s.id
	}
	return ids
}

// Build renders every chart for a view.
func Build(v engine.View, o Options) []models.Chart {
	out := make([]models.Chart, 0, len(registry))
	for _, s := range registry {
		out = append(out, finish(s, v, o))
	}
	return out
}

// BuildChart renders a single chart by id.
func BuildChart(id string, v engine.View, o Options) (models.Chart, bool) {
	for _, s := range registry {
		if s.id == id {
			return finish(s, v, o), true
		}
	}
	return models.Chart{}, false
}

func finish(s chartSpec, v engine.View, o Options) models.Chart {
	c := s.build(v, o)
	c.ID = s.id
	c.Tab = s.tab
	if c.Rows == nil {
		c.Rows = [][]any{}
	}
	c.Empty = len(c.Rows) == 0
	return c
}

func histogram(v engine.View, m engine.Metric, bins int, color, title string) models.Chart {
	c := models.Chart{
		Type:    models.Histogram,
		Title:   title,
		XLabel:  m.Column(),
		YLabel:  "count",
		Colors:  []string{color},
		Columns: []string{"lower", "upper", "count"},
		Options: models.Options{Opacity: 0.8},
	}
	for _, b := range engine.Histogram(v, m, bins) {
		c.Rows = append(c.Rows, []any{models.Float(b.Lower), models.Float(b.Upper), b.Count})
	}
	return c
}

func choropleth(v engine.View, colorBy engine.Metric) models.Chart {
	metrics := v.Store().PresentMetrics()
	c := models.Chart{
		Type:        models.Choropleth,
		Title:       "Average AI Adoption Rate by Country",
		ColorScale:  viridis,
		ValueColumn: colorBy.Column(),
		Columns:     []string{engine.DimCountry.Column(), "location"},
		Options:     models.Options{Height: 700},
	}
	perMetric := make([][]engine.Group, len(metrics))
	for i, m := range metrics {
		c.Columns = append(c.Columns, m.Column())
		perMetric[i] = engine.Aggregate(v, engine.Query{GroupBy: []engine.Dimension{engine.DimCountry}, Metric: m})
	}
	if len(metrics) == 0 {
		return c
	}
	// Every metric groups the same countries in the same key order.
	for row, g := range perMetric[0] {
		r := []any{g.Key(), geoName(g.Key())}
		for i := range metrics {
			r = append(r, models.Float(perMetric[i][row].Value))
		}
		c.Rows = append(c.Rows, r)
	}
	return c
}

func rankedBar(v engine.View, d engine.Dimension, m engine.Metric, color, title string) models.Chart {
	c := models.Chart{
		Type:    models.Bar,
		Title:   title,
		XLabel:  d.Column(),
		YLabel:  m.Column(),
		Colors:  []string{color},
		Columns: []string{d.Column(), m.Column()},
	}
	groups := engine.Aggregate(v, engine.Query{
		GroupBy: []engine.Dimension{d},
		Metric:  m,
		Func:    engine.Mean,
		Order:   engine.OrderValueDesc,
	})
	for _, g := range groups {
		c.Rows = append(c.Rows, []any{g.Key(), models.Float(g.Value)})
	}
	return c
}

func sunburst(v engine.View) models.Chart {
	m := engine.MetricContentVolume
	c := models.Chart{
		Type:    models.Sunburst,
		Title:   "AI Content Volume by Industry and Country",
		Colors:  pastel,
		Columns: []string{engine.DimIndustry.Column(), engine.DimCountry.Column(), m.Column()},
		Options: models.Options{Height: 600},
	}
	for _, n := range engine.Hierarchy(v, engine.DimIndustry, engine.DimCountry, m) {
		node := models.Node{Name: n.Name, Value: models.Float(n.Value)}
		for _, child := range n.Children {
			node.Children = append(node.Children, models.Node{Name: child.Name, Value: models.Float(child.Value)})
			c.Rows = append(c.Rows, []any{n.Name, child.Name, models.Float(child.Value)})
		}
		c.Tree = append(c.Tree, node)
	}
	return c
}

func box(v engine.View, d engine.Dimension, m engine.Metric, color, title string) models.Chart {
	c := models.Chart{
		Type:   models.Box,
		Title:  title,
		XLabel: d.Column(),
		YLabel: m.Column(),
		Colors: []string{color},
		Columns: []string{d.Column(), "min", "q1", "median", "q3", "max",
			"lower_whisker", "upper_whisker", "outliers"},
	}
	for _, b := range engine.BoxStats(v, d, m) {
		c.Rows = append(c.Rows, []any{
			b.Category,
			models.Float(b.Min), models.Float(b.Q1), models.Float(b.Median), models.Float(b.Q3), models.Float(b.Max),
			models.Float(b.LowerWhisker), models.Float(b.UpperWhisker),
			models.Floats(b.Outliers),
		})
	}
	return c
}

func trend(v engine.View, m engine.Metric, by engine.Dimension, palette []string, title string) models.Chart {
	c := models.Chart{
		Type:    models.Line,
		Title:   title,
		XLabel:  engine.DimYear.Column(),
		YLabel:  m.Column(),
		Colors:  palette,
		Columns: []string{engine.DimYear.Column(), by.Column(), m.Column()},
		Options: models.Options{Legend: true},
	}
	groups := engine.Aggregate(v, engine.Query{GroupBy: []engine.Dimension{engine.DimYear, by}, Metric: m})
	for _, g := range groups {
		year, _ := strconv.Atoi(g.Keys[0])
		c.Rows = append(c.Rows, []any{year, g.Keys[1], models.Float(g.Value)})
	}
	return c
}

func scatter(v engine.View, x, y engine.Metric) models.Chart {
	c := models.Chart{
		Type:   models.Scatter,
		Title:  fmt.Sprintf("Relationship between %s and %s", x.Column(), y.Column()),
		XLabel: x.Column(),
		YLabel: y.Column(),
		Colors: g10,
		Columns: []string{x.Column(), y.Column(),
			engine.DimIndustry.Column(), engine.DimCountry.Column(), engine.DimYear.Column()},
		Options: models.Options{Legend: true},
	}
	for _, p := range engine.Points(v, x, y) {
		c.Rows = append(c.Rows, []any{models.Float(p.X), models.Float(p.Y), p.Industry, p.Country, p.Year})
	}
	return c
}

func toolCounts(v engine.View, title string) models.Chart {
	c := models.Chart{
		Title:   title,
		XLabel:  "Tool",
		YLabel:  "Count",
		Columns: []string{"Tool", "Count"},
	}
	groups := engine.Aggregate(v, engine.Query{
		GroupBy: []engine.Dimension{engine.DimTool},
		Func:    engine.Count,
		Order:   engine.OrderValueDesc,
	})
	for _, g := range groups {
		c.Rows = append(c.Rows, []any{g.Key(), g.Count})
	}
	return c
}

func heatmap(v engine.View) models.Chart {
	c := models.Chart{
		Type:       models.Heatmap,
		Title:      "Correlation Heatmap (All Metrics)",
		ColorScale: coolwarm,
		Options:    models.Options{Annotate: true, Precision: 2, Height: 600},
	}
	corr := engine.Correlation(v)
	c.Columns = append([]string{""}, corr.Labels...)
	if v.Len() < 2 {
		return c
	}
	for i, label := range corr.Labels {
		row := []any{label}
		for _, x := range corr.Values[i] {
			row = append(row, models.Float(x))
		}
		c.Rows = append(c.Rows, row)
	}
	return c
}

func toolTitle(name, suffix string) string {
	if name == "" {
		return "Tool Usage"
	}
	return "Tool Usage in " + name + suffix
}

// pick returns want, or the first value of d present in the view when want
// is empty.
func pick(v engine.View, d engine.Dimension, want string) string {
	if want != "" {
		return want
	}
	if present := v.Distinct(d); len(present) > 0 {
		return present[0]
	}
	return ""
}
