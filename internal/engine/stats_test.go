package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	t.Parallel()

	store := NewStore([]Record{
		rec(2020, "USA", "Media", 0, 1),
		rec(2020, "USA", "Media", 10, 1),
		rec(2020, "USA", "Media", 20, 1),
		rec(2020, "USA", "Media", 40, 1),
		rec(2020, "USA", "Media", math.NaN(), 1),
	})

	bins := Histogram(store.All(), MetricAdoption, 4)
	require.Len(t, bins, 4)
	assert.Equal(t, Bin{Lower: 0, Upper: 10, Count: 1}, bins[0])
	assert.Equal(t, Bin{Lower: 10, Upper: 20, Count: 1}, bins[1])
	assert.Equal(t, Bin{Lower: 20, Upper: 30, Count: 1}, bins[2])
	assert.Equal(t, Bin{Lower: 30, Upper: 40, Count: 1}, bins[3], "max lands in the closed last bin")

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 4, total)
}

func TestHistogram_Degenerate(t *testing.T) {
	t.Parallel()

	empty := Filter(scenarioStore(), Selection{Countries: []string{}})
	assert.Nil(t, Histogram(empty, MetricAdoption, 20))

	same := NewStore([]Record{rec(2020, "USA", "Media", 5, 1), rec(2021, "USA", "Media", 5, 1)})
	bins := Histogram(same.All(), MetricAdoption, 20)
	require.Len(t, bins, 1)
	assert.Equal(t, 2, bins[0].Count)
}

func TestHistogram_SkipsInfinite(t *testing.T) {
	t.Parallel()

	header := "Year,Country,Industry,AI Adoption Rate (%),AI-Generated Content Volume (TBs per year),Job Loss Due to AI (%),Revenue Increase Due to AI (%),Human-AI Collaboration Rate (%),Top AI Tools Used,Regulation Status,Consumer Trust in AI (%)\n"
	store, err := ReadCSV(strings.NewReader(header +
		"2020,USA,Media,inf,10,5,20,50,ChatGPT,Lenient,60\n" +
		"2020,USA,Media,40,10,5,20,50,ChatGPT,Lenient,60\n" +
		"2021,UK,Media,-Inf,10,5,20,50,ChatGPT,Lenient,60\n" +
		"2021,UK,Media,60,10,5,20,50,ChatGPT,Lenient,60\n"))
	require.NoError(t, err)
	require.True(t, math.IsInf(store.Values[MetricAdoption][0], 1))

	var bins []Bin
	require.NotPanics(t, func() { bins = Histogram(store.All(), MetricAdoption, 20) })
	require.Len(t, bins, 20)
	assert.Equal(t, 40.0, bins[0].Lower)
	assert.Equal(t, 60.0, bins[19].Upper)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 2, total)

	only := NewStore([]Record{rec(2020, "USA", "Media", math.Inf(1), 1)})
	assert.Nil(t, Histogram(only.All(), MetricAdoption, 20))
}

func TestBoxStats(t *testing.T) {
	t.Parallel()

	records := []Record{
		rec(2020, "USA", "Retail", 50, 1),
		rec(2020, "USA", "Media", 1, 1),
		rec(2020, "USA", "Media", 2, 1),
		rec(2020, "USA", "Media", 3, 1),
		rec(2020, "USA", "Media", 4, 1),
		rec(2020, "USA", "Media", 100, 1),
	}
	boxes := BoxStats(NewStore(records).All(), DimIndustry, MetricAdoption)
	require.Len(t, boxes, 2)

	media := boxes[0]
	assert.Equal(t, "Media", media.Category)
	assert.Equal(t, 5, media.Count)
	assert.Equal(t, 1.0, media.Min)
	assert.Equal(t, 2.0, media.Q1)
	assert.Equal(t, 3.0, media.Median)
	assert.Equal(t, 4.0, media.Q3)
	assert.Equal(t, 100.0, media.Max)
	assert.Equal(t, 1.0, media.LowerWhisker)
	assert.Equal(t, 4.0, media.UpperWhisker)
	assert.Equal(t, []float64{100}, media.Outliers)

	retail := boxes[1]
	assert.Equal(t, "Retail", retail.Category)
	assert.Equal(t, 50.0, retail.Median)
	assert.Empty(t, retail.Outliers)
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	xs := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(xs, 0.25), 1e-12)
	assert.InDelta(t, 2.5, quantile(xs, 0.5), 1e-12)
	assert.InDelta(t, 3.25, quantile(xs, 0.75), 1e-12)
	assert.Equal(t, 4.0, quantile(xs, 1))
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.3))
}

func TestCorrelation(t *testing.T) {
	t.Parallel()

	records := []Record{
		rec(2020, "USA", "Media", 10, 30),
		rec(2021, "USA", "Media", 20, 20),
		rec(2022, "USA", "Media", 30, 10),
	}
	m := Correlation(NewStore(records).All())

	require.Equal(t, "Year", m.Labels[0])
	require.Len(t, m.Values, len(m.Labels))

	adoption := indexOf(t, m.Labels, MetricAdoption.Column())
	volume := indexOf(t, m.Labels, MetricContentVolume.Column())
	trust := indexOf(t, m.Labels, MetricTrust.Column())

	assert.InDelta(t, 1.0, m.Values[0][adoption], 1e-9)
	assert.InDelta(t, -1.0, m.Values[adoption][volume], 1e-9)
	assert.Equal(t, m.Values[adoption][volume], m.Values[volume][adoption])
	assert.InDelta(t, 1.0, m.Values[adoption][adoption], 1e-9)
	assert.True(t, math.IsNaN(m.Values[adoption][trust]), "trust is entirely missing")
}

func TestCorrelation_ZeroVariance(t *testing.T) {
	t.Parallel()

	records := []Record{
		rec(2020, "USA", "Media", 10, 5),
		rec(2020, "USA", "Media", 20, 6),
	}
	m := Correlation(NewStore(records).All())
	assert.True(t, math.IsNaN(m.Values[0][1]), "year is constant")
}

func TestPointsAndHierarchy(t *testing.T) {
	t.Parallel()

	store := NewStore([]Record{
		rec(2020, "USA", "Media", 10, 30),
		rec(2021, "UK", "Media", math.NaN(), 20),
		rec(2022, "USA", "Retail", 30, 10),
		rec(2022, "UK", "Media", 5, 5),
	})

	points := Points(store.All(), MetricAdoption, MetricContentVolume)
	require.Len(t, points, 3)
	assert.Equal(t, Point{X: 10, Y: 30, Industry: "Media", Country: "USA", Year: 2020}, points[0])

	tree := Hierarchy(store.All(), DimIndustry, DimCountry, MetricContentVolume)
	require.Len(t, tree, 2)
	assert.Equal(t, "Media", tree[0].Name)
	assert.Equal(t, 55.0, tree[0].Value)
	assert.Equal(t, []Node{{Name: "UK", Value: 25}, {Name: "USA", Value: 30}}, tree[0].Children)
	assert.Equal(t, "Retail", tree[1].Name)
	assert.Equal(t, 10.0, tree[1].Value)
}

func indexOf(t *testing.T, labels []string, want string) int {
	t.Helper()
	for i, l := range labels {
		if l == want {
			return i
		}
	}
	t.Fatalf("label %q not found in %v", want, labels)
	return -1
}
