package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Scenario(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	view := Filter(store, Selection{
		Years:      []int{2020},
		Countries:  []string{"USA"},
		Industries: []string{"Media"},
	})

	require.Equal(t, 2, view.Len())
	assert.InDelta(t, 50.0, MeanOf(view, MetricAdoption), 1e-9)
}

func TestFilter_FullSelectionIsIdentity(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	full := Selection{
		Years:      store.DistinctYears(),
		Countries:  store.Domain(DimCountry),
		Industries: store.Domain(DimIndustry),
	}

	assert.Equal(t, viewRows(store.All()), viewRows(Filter(store, full)))
	assert.Equal(t, viewRows(store.All()), viewRows(Filter(store, SelectAll())))
}

func TestFilter_EmptyDimensionYieldsEmptyView(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	tests := []struct {
		name string
		sel  Selection
	}{
		{name: "no years", sel: Selection{Years: []int{}}},
		{name: "no countries", sel: Selection{Countries: []string{}}},
		{name: "no industries", sel: Selection{Industries: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := Filter(store, tt.sel)
			assert.Equal(t, 0, view.Len())

			kpis := ComputeKPIs(view)
			assert.True(t, math.IsNaN(kpis.AvgAdoption))
			assert.True(t, math.IsNaN(kpis.AvgTrust))
			assert.Zero(t, kpis.TotalContentVolume)
			assert.Zero(t, kpis.Countries)
			assert.Nil(t, Aggregate(view, Query{GroupBy: []Dimension{DimCountry}, Metric: MetricAdoption}))
		})
	}
}

func TestFilter_ResultSatisfiesEveryPredicate(t *testing.T) {
	t.Parallel()

	store := NewStore([]Record{
		rec(2020, "USA", "Media", 1, 1),
		rec(2021, "USA", "Retail", 2, 1),
		rec(2022, "UK", "Media", 3, 1),
		rec(2021, "UK", "Retail", 4, 1),
		rec(2020, "India", "Gaming", 5, 1),
		rec(2021, "India", "Media", 6, 1),
	})
	sel := Selection{
		Years:      []int{2020, 2021},
		Countries:  []string{"USA", "India"},
		Industries: []string{"Media", "Gaming"},
	}

	view := Filter(store, sel)
	require.Equal(t, 3, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		assert.Contains(t, sel.Years, r.Year)
		assert.Contains(t, sel.Countries, r.Country)
		assert.Contains(t, sel.Industries, r.Industry)
		assert.Less(t, view.Row(i), store.Len())
	}
}

func TestFilter_UnknownValuesMatchNothing(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	view := Filter(store, Selection{Countries: []string{"Atlantis"}})
	assert.Equal(t, 0, view.Len())

	view = Filter(store, Selection{Countries: []string{"Atlantis", "UK"}})
	assert.Equal(t, 1, view.Len())
}

func TestView_WhereAndRecords(t *testing.T) {
	t.Parallel()

	view := scenarioStore().All()

	usa := view.Where(DimCountry, "USA")
	assert.Equal(t, 2, usa.Len())
	assert.Equal(t, []string{"USA", "UK"}, view.Distinct(DimCountry))

	page := view.Records(1, 1)
	require.Len(t, page, 1)
	assert.Equal(t, 60.0, page[0].Value(MetricAdoption))

	assert.Empty(t, view.Records(10, 5))
	assert.Len(t, view.Records(0, 0), 3)
}

func TestFilter_YearsBeyondColumnRangeMatchNothing(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	assert.Equal(t, 0, Filter(store, Selection{Years: []int{2020 + 1<<32}}).Len())
	assert.Equal(t, 0, Filter(store, Selection{Years: []int{math.MinInt32 - 1}}).Len())
	assert.Equal(t, 2, Filter(store, Selection{Years: []int{2020 - 1<<32, 2020}}).Len())
}
