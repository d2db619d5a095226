package engine

import "math"

// KPIs are the headline figures for a view.
type KPIs struct {
	AvgAdoption        float64
	AvgJobLoss         float64
	AvgRevenue         float64
	AvgTrust           float64
	AvgCollaboration   float64
	TotalContentVolume float64
	Countries          int
	Industries         int
	Records            int
}

// ComputeKPIs summarises a view. Means are NaN for an empty view.
func ComputeKPIs(v View) KPIs {
	return KPIs{
		AvgAdoption:        MeanOf(v, MetricAdoption),
		AvgJobLoss:         MeanOf(v, MetricJobLoss),
		AvgRevenue:         MeanOf(v, MetricRevenue),
		AvgTrust:           MeanOf(v, MetricTrust),
		AvgCollaboration:   MeanOf(v, MetricCollaboration),
		TotalContentVolume: SumOf(v, MetricContentVolume),
		Countries:          len(v.Distinct(DimCountry)),
		Industries:         len(v.Distinct(DimIndustry)),
		Records:            v.Len(),
	}
}

// MeanOf averages the non-missing values of m. NaN when there are none.
func MeanOf(v View, m Metric) float64 {
	var sum float64
	var n int
	for i := 0; i < v.Len(); i++ {
		if x := v.Value(i, m); !math.IsNaN(x) {
			sum += x
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// SumOf totals the non-missing values of m.
func SumOf(v View, m Metric) float64 {
	var sum float64
	for i := 0; i < v.Len(); i++ {
		if x := v.Value(i, m); !math.IsNaN(x) {
			sum += x
		}
	}
	return sum
}
