package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Country,Year,Industry,AI Adoption Rate (%),AI-Generated Content Volume (TBs per year),Job Loss Due to AI (%),Revenue Increase Due to AI (%),Human-AI Collaboration Rate (%),Top AI Tools Used,Regulation Status,Consumer Trust in AI (%),Market Share of AI Companies (%)
South Korea,2022,Media,44.29,33.09,16.77,46.12,74.79,Bard,Strict,40.77,18.73
China,2025,Legal,34.75,66.74,46.89,52.46,26.17,DALL-E,Strict,35.67,35.02
USA,2022,Automotive,81.06,96.13,10.66,45.6,39.66,Stable Diffusion,Moderate,54.47,22.76
France,2021,Legal,85.24,93.76,27.7,78.24,29.45,Claude,Moderate,51.84,1.93
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	store, err := LoadCSV(writeTemp(t, sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 4, store.Len())

	r := store.Record(0)
	assert.Equal(t, 2022, r.Year)
	assert.Equal(t, "South Korea", r.Country)
	assert.Equal(t, "Media", r.Industry)
	assert.Equal(t, "Bard", r.Tool)
	assert.Equal(t, "Strict", r.Regulation)
	assert.Equal(t, 44.29, r.Value(MetricAdoption))
	assert.Equal(t, 33.09, r.Value(MetricContentVolume))
	assert.Equal(t, 40.77, r.Value(MetricTrust))
	assert.Equal(t, 18.73, r.Value(MetricMarketShare))

	assert.Len(t, store.CountryDict, 4)
	assert.Equal(t, []string{"Automotive", "Legal", "Media"}, store.Domain(DimIndustry))
	assert.Equal(t, []int{2021, 2022, 2025}, store.DistinctYears())
	assert.True(t, store.HasMetric(MetricMarketShare))
}

func TestLoadCSV_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCSV_OptionalColumnAbsent(t *testing.T) {
	t.Parallel()

	csv := `Year,Country,Industry,AI Adoption Rate (%),AI-Generated Content Volume (TBs per year),Job Loss Due to AI (%),Revenue Increase Due to AI (%),Human-AI Collaboration Rate (%),Top AI Tools Used,Regulation Status,Consumer Trust in AI (%)
2020,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60
`
	store, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.False(t, store.HasMetric(MetricMarketShare))
	assert.True(t, math.IsNaN(store.Record(0).Value(MetricMarketShare)))
	assert.NotContains(t, store.PresentMetrics(), MetricMarketShare)
}

func TestReadCSV_MissingValuesAreNaN(t *testing.T) {
	t.Parallel()

	csv := `Year,Country,Industry,AI Adoption Rate (%),AI-Generated Content Volume (TBs per year),Job Loss Due to AI (%),Revenue Increase Due to AI (%),Human-AI Collaboration Rate (%),Top AI Tools Used,Regulation Status,Consumer Trust in AI (%)
2020,USA,Media,,10,NA,20,50,,Lenient,160
`
	store, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	r := store.Record(0)
	assert.True(t, math.IsNaN(r.Value(MetricAdoption)))
	assert.True(t, math.IsNaN(r.Value(MetricJobLoss)))
	assert.Equal(t, "", r.Tool)
	assert.Equal(t, 160.0, r.Value(MetricTrust), "out-of-range percentages pass through")
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	header := "Year,Country,Industry,AI Adoption Rate (%),AI-Generated Content Volume (TBs per year),Job Loss Due to AI (%),Revenue Increase Due to AI (%),Human-AI Collaboration Rate (%),Top AI Tools Used,Regulation Status,Consumer Trust in AI (%)\n"

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing column",
			input:   "Year,Country,Industry\n2020,USA,Media\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing country",
			input:   header + "2020,,Media,40,10,5,20,50,ChatGPT,Lenient,60\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "missing year",
			input:   header + "NA,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60\n",
			wantErr: ErrMissingKey,
		},
		{
			name:    "year overflows",
			input:   header + "4294969316,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60\n",
			wantErr: ErrYearRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader(""))
		require.Error(t, err)
	})

	t.Run("year overflow names the line", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader(header + "2020,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60\n-2147483649,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60\n"))
		require.ErrorIs(t, err, ErrYearRange)
		assert.Contains(t, err.Error(), "line 3: year out of range")
	})

	t.Run("malformed number", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader(header + "2020,USA,Media,forty,10,5,20,50,ChatGPT,Lenient,60\n"))
		require.Error(t, err)
	})
}

func TestParseDimensionAndMetric(t *testing.T) {
	t.Parallel()

	d, ok := ParseDimension("Country")
	require.True(t, ok)
	assert.Equal(t, DimCountry, d)

	d, ok = ParseDimension("industry")
	require.True(t, ok)
	assert.Equal(t, DimIndustry, d)

	_, ok = ParseDimension("planet")
	assert.False(t, ok)

	m, ok := ParseMetric("job_loss")
	require.True(t, ok)
	assert.Equal(t, MetricJobLoss, m)

	m, ok = ParseMetric("Consumer Trust in AI (%)")
	require.True(t, ok)
	assert.Equal(t, MetricTrust, m)

	assert.Len(t, Metrics(), int(NumMetrics))
}
