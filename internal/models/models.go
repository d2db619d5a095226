package models

import (
	"math"
	"strconv"
)

// Float is a float64 that encodes NaN and ±Inf as JSON null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// Floats converts a float64 slice.
func Floats(xs []float64) []Float {
	out := make([]Float, len(xs))
	for i, x := range xs {
		out[i] = Float(x)
	}
	return out
}

type DashboardData struct {
	Selection Selection `json:"selection"`
	KPIs      KPIs      `json:"kpis"`
	Charts    []Chart   `json:"charts"`
}

// Selection echoes the filter a payload was computed for.
type Selection struct {
	Years      []int    `json:"years"`
	Countries  []string `json:"countries"`
	Industries []string `json:"industries"`
	Records    int      `json:"records"`
}

type Dimensions struct {
	Years      []int        `json:"years"`
	Countries  []string     `json:"countries"`
	Industries []string     `json:"industries"`
	Metrics    []MetricInfo `json:"metrics"`
}

type MetricInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type KPIs struct {
	AvgAdoption        Float `json:"avg_adoption"`
	AvgJobLoss         Float `json:"avg_job_loss"`
	AvgRevenue         Float `json:"avg_revenue"`
	AvgTrust           Float `json:"avg_trust"`
	AvgCollaboration   Float `json:"avg_collaboration"`
	TotalContentVolume Float `json:"total_content_volume"`
	Countries          int   `json:"countries"`
	Industries         int   `json:"industries"`
	Records            int   `json:"records"`
}

// ChartType is the directive handed to the rendering boundary.
type ChartType string

const (
	Histogram  ChartType = "histogram"
	Choropleth ChartType = "choropleth"
	Bar        ChartType = "bar"
	Sunburst   ChartType = "sunburst"
	Box        ChartType = "box"
	Line       ChartType = "line"
	Scatter    ChartType = "scatter"
	Pie        ChartType = "pie"
	Heatmap    ChartType = "heatmap"
)

// Chart is one render-ready chart: a type directive, display options and a
// table whose shape depends on the type.
//
//	histogram   lower, upper, count
//	bar, pie    label, value
//	choropleth  country, location, <metric>...   (ValueColumn picks the colour)
//	box         category, min, q1, median, q3, max, lower_whisker, upper_whisker, outliers
//	line        x, series, value
//	scatter     x, y, color, <hover>...
//	heatmap     row label, <one value per column label>
//	sunburst    Tree instead of Rows
type Chart struct {
	ID          string    `json:"id"`
	Tab         string    `json:"tab"`
	Type        ChartType `json:"type"`
	Title       string    `json:"title"`
	XLabel      string    `json:"x_label,omitempty"`
	YLabel      string    `json:"y_label,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	ColorScale  []string  `json:"color_scale,omitempty"`
	ValueColumn string    `json:"value_column,omitempty"`
	Columns     []string  `json:"columns"`
	Rows        [][]any   `json:"rows"`
	Tree        []Node    `json:"tree,omitempty"`
	Options     Options   `json:"options"`
	Empty       bool      `json:"empty"`
}

// Options carries renderer hints that vary per chart type.
type Options struct {
	Height    int     `json:"height,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
	BarGap    float64 `json:"bar_gap,omitempty"`
	Donut     bool    `json:"donut,omitempty"`
	Annotate  bool    `json:"annotate,omitempty"`
	Precision int     `json:"precision,omitempty"`
	Legend    bool    `json:"legend,omitempty"`
}

type Node struct {
	Name     string `json:"name"`
	Value    Float  `json:"value"`
	Children []Node `json:"children,omitempty"`
}

// Table is a raw records preview.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
