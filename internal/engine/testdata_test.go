package engine

import "math"

// rec builds a record with adoption and content volume set; other metrics are missing.
func rec(year int, country, industry string, adoption, volume float64) Record {
	r := Record{Year: year, Country: country, Industry: industry, Tool: "ChatGPT", Regulation: "Moderate"}
	for m := range r.Values {
		r.Values[m] = math.NaN()
	}
	r.Values[MetricAdoption] = adoption
	r.Values[MetricContentVolume] = volume
	return r
}

func scenarioStore() *ColumnStore {
	return NewStore([]Record{
		rec(2020, "USA", "Media", 40.0, 10),
		rec(2020, "USA", "Media", 60.0, 20),
		rec(2021, "UK", "Retail", 30.0, 5),
	})
}

func viewRows(v View) []int {
	out := make([]int, v.Len())
	for i := range out {
		out[i] = v.Row(i)
	}
	return out
}
