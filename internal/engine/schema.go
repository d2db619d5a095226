package engine

import "strings"

// Dimension is a categorical column usable as a filter or group key.
type Dimension int

const (
	DimYear Dimension = iota
	DimCountry
	DimIndustry
	DimTool
	DimRegulation
)

var dimensionInfo = [...]struct {
	key    string
	column string
}{
	DimYear:       {"year", "Year"},
	DimCountry:    {"country", "Country"},
	DimIndustry:   {"industry", "Industry"},
	DimTool:       {"tool", "Top AI Tools Used"},
	DimRegulation: {"regulation", "Regulation Status"},
}

// Key is the short name used in query strings and JSON.
func (d Dimension) Key() string { return dimensionInfo[d].key }

// Column is the CSV header of the dimension.
func (d Dimension) Column() string { return dimensionInfo[d].column }

func (d Dimension) String() string { return d.Column() }

// ParseDimension resolves a dimension by key or column name, case-insensitively.
func ParseDimension(s string) (Dimension, bool) {
	s = strings.TrimSpace(s)
	for d := range dimensionInfo {
		if strings.EqualFold(s, dimensionInfo[d].key) || strings.EqualFold(s, dimensionInfo[d].column) {
			return Dimension(d), true
		}
	}
	return 0, false
}

// Metric is a numeric column of the dataset.
type Metric int

const (
	MetricAdoption Metric = iota
	MetricContentVolume
	MetricJobLoss
	MetricRevenue
	MetricCollaboration
	MetricTrust
	MetricMarketShare

	// NumMetrics is the number of known metric columns.
	NumMetrics
)

var metricInfo = [NumMetrics]struct {
	key      string
	column   string
	optional bool
}{
	MetricAdoption:      {key: "adoption", column: "AI Adoption Rate (%)"},
	MetricContentVolume: {key: "content_volume", column: "AI-Generated Content Volume (TBs per year)"},
	MetricJobLoss:       {key: "job_loss", column: "Job Loss Due to AI (%)"},
	MetricRevenue:       {key: "revenue", column: "Revenue Increase Due to AI (%)"},
	MetricCollaboration: {key: "collaboration", column: "Human-AI Collaboration Rate (%)"},
	MetricTrust:         {key: "trust", column: "Consumer Trust in AI (%)"},
	MetricMarketShare:   {key: "market_share", column: "Market Share of AI Companies (%)", optional: true},
}

// Key is the short name used in query strings and JSON.
func (m Metric) Key() string { return metricInfo[m].key }

// Column is the CSV header of the metric.
func (m Metric) Column() string { return metricInfo[m].column }

func (m Metric) String() string { return m.Column() }

// Optional reports whether the column may be absent from the CSV.
func (m Metric) Optional() bool { return metricInfo[m].optional }

// ParseMetric resolves a metric by key or column name, case-insensitively.
func ParseMetric(s string) (Metric, bool) {
	s = strings.TrimSpace(s)
	for m := Metric(0); m < NumMetrics; m++ {
		if strings.EqualFold(s, metricInfo[m].key) || strings.EqualFold(s, metricInfo[m].column) {
			return m, true
		}
	}
	return 0, false
}

// Metrics returns every known metric in column order.
func Metrics() []Metric {
	out := make([]Metric, 0, NumMetrics)
	for m := Metric(0); m < NumMetrics; m++ {
		out = append(out, m)
	}
	return out
}
