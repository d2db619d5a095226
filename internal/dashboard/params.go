package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"aidash/internal/engine"
)

// ErrInvalidParam is wrapped by every parameter parsing error.
var ErrInvalidParam = errors.New("invalid parameter")

// Query parameter names shared by the page and the JSON API.
const (
	ParamYear           = "year"
	ParamCountry        = "country"
	ParamIndustry       = "industry"
	ParamSubmitted      = "f"
	ParamCountryMetric  = "country_metric"
	ParamIndustryMetric = "industry_metric"
	ParamTrendMetric    = "trend_metric"
	ParamGroupBy        = "group_by"
	ParamX              = "x"
	ParamY              = "y"
	ParamToolIndustry   = "tool_industry"
	ParamToolCountry    = "tool_country"
	ParamTab            = "tab"
)

// ComparisonMetrics are offered by the country, industry and trend selectors.
var ComparisonMetrics = []engine.Metric{
	engine.MetricAdoption,
	engine.MetricJobLoss,
	engine.MetricRevenue,
	engine.MetricCollaboration,
	engine.MetricTrust,
}

// ScatterMetrics are offered by the correlation scatter axes.
var ScatterMetrics = []engine.Metric{
	engine.MetricAdoption,
	engine.MetricContentVolume,
	engine.MetricJobLoss,
	engine.MetricRevenue,
	engine.MetricCollaboration,
	engine.MetricTrust,
}

// TrendGroupings are the choices of the trend group-by radio.
var TrendGroupings = []engine.Dimension{engine.DimCountry, engine.DimIndustry}

// Options are the per-chart controls: dropdowns, radio and tool drill-downs.
type Options struct {
	CountryMetric  engine.Metric
	IndustryMetric engine.Metric
	TrendMetric    engine.Metric
	TrendGroupBy   engine.Dimension
	ScatterX       engine.Metric
	ScatterY       engine.Metric
	// Empty means the first industry/country present in the view.
	ToolIndustry string
	ToolCountry  string
}

// DefaultOptions mirrors the first choice of every control.
func DefaultOptions() Options {
	return Options{
		CountryMetric:  ComparisonMetrics[0],
		IndustryMetric: ComparisonMetrics[0],
		TrendMetric:    ComparisonMetrics[0],
		TrendGroupBy:   TrendGroupings[0],
		ScatterX:       ScatterMetrics[0],
		ScatterY:       ScatterMetrics[0],
	}
}

// ParseSelection reads the year/country/industry filters. Without the
// submitted marker an absent dimension means "all"; with it, an absent
// dimension means "none", which is what an emptied multi-select submits.
func ParseSelection(q url.Values) (engine.Selection, error) {
	submitted := q.Has(ParamSubmitted)
	sel := engine.SelectAll()

	if raw, ok := values(q, ParamYear, submitted); ok {
		sel.Years = make([]int, 0, len(raw))
		for _, s := range raw {
			y, err := strconv.Atoi(s)
			if err != nil {
				return sel, fmt.Errorf("%w: %s=%q", ErrInvalidParam, ParamYear, s)
			}
			sel.Years = append(sel.Years, y)
		}
	}
	if raw, ok := values(q, ParamCountry, submitted); ok {
		sel.Countries = raw
	}
	if raw, ok := values(q, ParamIndustry, submitted); ok {
		sel.Industries = raw
	}
	return sel, nil
}

// values returns the trimmed, non-empty values of key. ok is false when the
// dimension is unrestricted.
func values(q url.Values, key string, submitted bool) ([]string, bool) {
	raw, present := q[key]
	if !present && !submitted {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		// Comma lists are accepted for API convenience.
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}

// ParseOptions reads the chart controls. In strict mode an unknown metric or
// grouping is an error; otherwise it falls back to the default choice.
func ParseOptions(q url.Values, strict bool) (Options, error) {
	opts := DefaultOptions()
	var err error

	metricParams := []struct {
		key     string
		choices []engine.Metric
		dst     *engine.Metric
	}{
		{ParamCountryMetric, ComparisonMetrics, &opts.CountryMetric},
		{ParamIndustryMetric, ComparisonMetrics, &opts.IndustryMetric},
		{ParamTrendMetric, ComparisonMetrics, &opts.TrendMetric},
		{ParamX, ScatterMetrics, &opts.ScatterX},
		{ParamY, ScatterMetrics, &opts.ScatterY},
	}
	for _, p := range metricParams {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		m, ok := engine.ParseMetric(raw)
		if !ok || !slices.Contains(p.choices, m) {
			if strict {
				return opts, fmt.Errorf("%w: %s=%q", ErrInvalidParam, p.key, raw)
			}
			continue
		}
		*p.dst = m
	}

	if raw := q.Get(ParamGroupBy); raw != "" {
		d, ok := engine.ParseDimension(raw)
		switch {
		case ok && slices.Contains(TrendGroupings, d):
			opts.TrendGroupBy = d
		case strict:
			err = fmt.Errorf("%w: %s=%q", ErrInvalidParam, ParamGroupBy, raw)
		}
	}

	opts.ToolIndustry = strings.TrimSpace(q.Get(ParamToolIndustry))
	opts.ToolCountry = strings.TrimSpace(q.Get(ParamToolCountry))
	return opts, err
}

// Encode writes the options back as query parameters.
func (o Options) Encode(q url.Values) {
	q.Set(ParamCountryMetric, o.CountryMetric.Key())
	q.Set(ParamIndustryMetric, o.IndustryMetric.Key())
	q.Set(ParamTrendMetric, o.TrendMetric.Key())
	q.Set(ParamGroupBy, o.TrendGroupBy.Key())
	q.Set(ParamX, o.ScatterX.Key())
	q.Set(ParamY, o.ScatterY.Key())
	if o.ToolIndustry != "" {
		q.Set(ParamToolIndustry, o.ToolIndustry)
	}
	if o.ToolCountry != "" {
		q.Set(ParamToolCountry, o.ToolCountry)
	}
}
