package dashboard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidash/internal/engine"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  engine.Selection
	}{
		{
			name:  "nothing means all",
			query: "",
			want:  engine.SelectAll(),
		},
		{
			name:  "repeated and comma separated",
			query: "year=2020&year=2021,2022&country=USA&industry=Media,+Retail",
			want: engine.Selection{
				Years:      []int{2020, 2021, 2022},
				Countries:  []string{"USA"},
				Industries: []string{"Media", "Retail"},
			},
		},
		{
			name:  "submitted form with emptied country",
			query: "f=1&year=2024&industry=Media",
			want: engine.Selection{
				Years:      []int{2024},
				Countries:  []string{},
				Industries: []string{"Media"},
			},
		},
		{
			name:  "explicit empty value",
			query: "country=",
			want:  engine.Selection{Countries: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseSelection(q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSelection_BadYear(t *testing.T) {
	t.Parallel()

	_, err := ParseSelection(url.Values{ParamYear: {"twenty"}})
	require.ErrorIs(t, err, ErrInvalidParam)
	assert.Contains(t, err.Error(), "twenty")
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	q := url.Values{
		ParamCountryMetric:  {"job_loss"},
		ParamIndustryMetric: {"Consumer Trust in AI (%)"},
		ParamTrendMetric:    {"revenue"},
		ParamGroupBy:        {"Industry"},
		ParamX:              {"content_volume"},
		ParamY:              {"collaboration"},
		ParamToolIndustry:   {" Media "},
		ParamToolCountry:    {"UK"},
	}
	got, err := ParseOptions(q, true)
	require.NoError(t, err)
	assert.Equal(t, Options{
		CountryMetric:  engine.MetricJobLoss,
		IndustryMetric: engine.MetricTrust,
		TrendMetric:    engine.MetricRevenue,
		TrendGroupBy:   engine.DimIndustry,
		ScatterX:       engine.MetricContentVolume,
		ScatterY:       engine.MetricCollaboration,
		ToolIndustry:   "Media",
		ToolCountry:    "UK",
	}, got)

	// Round trip through the query encoding.
	encoded := url.Values{}
	got.Encode(encoded)
	again, err := ParseOptions(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestParseOptions_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query url.Values
	}{
		{"unknown metric", url.Values{ParamCountryMetric: {"happiness"}}},
		{"content volume is not a comparison metric", url.Values{ParamTrendMetric: {"content_volume"}}},
		{"year is not a trend grouping", url.Values{ParamGroupBy: {"year"}}},
		{"unknown axis", url.Values{ParamY: {"market_cap"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseOptions(tt.query, true)
			assert.ErrorIs(t, err, ErrInvalidParam)

			// The page falls back to defaults instead.
			got, err := ParseOptions(tt.query, false)
			require.NoError(t, err)
			assert.Equal(t, DefaultOptions(), got)
		})
	}
}
