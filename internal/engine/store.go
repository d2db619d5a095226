package engine

import (
	"math"
	"sort"
	"strconv"
)

// missingID marks an absent categorical value in an ID column.
const missingID int32 = -1

// ColumnStore holds the dataset in Struct-of-Arrays format.
// It is never mutated after load; Views index into it.
type ColumnStore struct {
	// Data Columns (Flat Arrays)
	Years  []int32
	Values [NumMetrics][]float64 // NaN = missing

	// Dictionary Encoded IDs (0..N, missingID when absent)
	CountryIDs    []int32
	IndustryIDs   []int32
	ToolIDs       []int32
	RegulationIDs []int32

	// Dictionaries (ID -> String)
	CountryDict    []string
	IndustryDict   []string
	ToolDict       []string
	RegulationDict []string

	present [NumMetrics]bool
}

// Record is one row of the dataset.
type Record struct {
	Year       int
	Country    string
	Industry   string
	Tool       string
	Regulation string
	Values     [NumMetrics]float64
}

// Value returns the record's value for m.
func (r Record) Value(m Metric) float64 { return r.Values[m] }

// Len is the number of rows.
func (cs *ColumnStore) Len() int { return len(cs.Years) }

// HasMetric reports whether the metric column was present in the source.
func (cs *ColumnStore) HasMetric(m Metric) bool { return cs.present[m] }

// PresentMetrics lists the metrics loaded from the source, in column order.
func (cs *ColumnStore) PresentMetrics() []Metric {
	out := make([]Metric, 0, NumMetrics)
	for m := Metric(0); m < NumMetrics; m++ {
		if cs.present[m] {
			out = append(out, m)
		}
	}
	return out
}

// All returns a view over every row.
func (cs *ColumnStore) All() View {
	idx := make([]int32, cs.Len())
	for i := range idx {
		idx[i] = int32(i)
	}
	return View{store: cs, idx: idx}
}

// Record materialises row i.
func (cs *ColumnStore) Record(i int) Record {
	r := Record{
		Year:       int(cs.Years[i]),
		Country:    lookup(cs.CountryDict, cs.CountryIDs[i]),
		Industry:   lookup(cs.IndustryDict, cs.IndustryIDs[i]),
		Tool:       lookup(cs.ToolDict, cs.ToolIDs[i]),
		Regulation: lookup(cs.RegulationDict, cs.RegulationIDs[i]),
	}
	for m := Metric(0); m < NumMetrics; m++ {
		r.Values[m] = cs.Values[m][i]
	}
	return r
}

// DistinctYears returns the distinct years, ascending.
func (cs *ColumnStore) DistinctYears() []int {
	seen := make(map[int32]struct{})
	for _, y := range cs.Years {
		seen[y] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, int(y))
	}
	sort.Ints(out)
	return out
}

// Domain returns the distinct values of a categorical dimension, sorted.
// Years are returned in numeric order as strings.
func (cs *ColumnStore) Domain(d Dimension) []string {
	if d == DimYear {
		years := cs.DistinctYears()
		out := make([]string, len(years))
		for i, y := range years {
			out[i] = strconv.Itoa(y)
		}
		return out
	}
	dict, _ := cs.column(d)
	out := append([]string(nil), dict...)
	sort.Strings(out)
	return out
}

func (cs *ColumnStore) column(d Dimension) ([]string, []int32) {
	switch d {
	case DimCountry:
		return cs.CountryDict, cs.CountryIDs
	case DimIndustry:
		return cs.IndustryDict, cs.IndustryIDs
	case DimTool:
		return cs.ToolDict, cs.ToolIDs
	case DimRegulation:
		return cs.RegulationDict, cs.RegulationIDs
	}
	return nil, nil
}

func lookup(dict []string, id int32) string {
	if id == missingID {
		return ""
	}
	return dict[id]
}

// storeBuilder appends rows while dictionary-encoding categoricals.
type storeBuilder struct {
	cs *ColumnStore

	cMap map[string]int32
	iMap map[string]int32
	tMap map[string]int32
	rMap map[string]int32
}

func newStoreBuilder(present [NumMetrics]bool, capacity int) *storeBuilder {
	cs := &ColumnStore{
		Years:         make([]int32, 0, capacity),
		CountryIDs:    make([]int32, 0, capacity),
		IndustryIDs:   make([]int32, 0, capacity),
		ToolIDs:       make([]int32, 0, capacity),
		RegulationIDs: make([]int32, 0, capacity),
		present:       present,
	}
	for m := range cs.Values {
		cs.Values[m] = make([]float64, 0, capacity)
	}
	return &storeBuilder{
		cs:   cs,
		cMap: make(map[string]int32),
		iMap: make(map[string]int32),
		tMap: make(map[string]int32),
		rMap: make(map[string]int32),
	}
}

func (b *storeBuilder) add(r Record) {
	cs := b.cs
	cs.Years = append(cs.Years, int32(r.Year))
	cs.CountryIDs = append(cs.CountryIDs, intern(b.cMap, &cs.CountryDict, r.Country))
	cs.IndustryIDs = append(cs.IndustryIDs, intern(b.iMap, &cs.IndustryDict, r.Industry))
	cs.ToolIDs = append(cs.ToolIDs, intern(b.tMap, &cs.ToolDict, r.Tool))
	cs.RegulationIDs = append(cs.RegulationIDs, intern(b.rMap, &cs.RegulationDict, r.Regulation))
	for m := Metric(0); m < NumMetrics; m++ {
		v := r.Values[m]
		if !cs.present[m] {
			v = math.NaN()
		}
		cs.Values[m] = append(cs.Values[m], v)
	}
}

func (b *storeBuilder) build() *ColumnStore { return b.cs }

func intern(ids map[string]int32, dict *[]string, s string) int32 {
	if s == "" {
		return missingID
	}
	if id, ok := ids[s]; ok {
		return id
	}
	id := int32(len(*dict))
	*dict = append(*dict, s)
	ids[s] = id
	return id
}

// NewStore builds a store from in-memory records. Every metric column is
// treated as present.
func NewStore(records []Record) *ColumnStore {
	var present [NumMetrics]bool
	for m := range present {
		present[m] = true
	}
	b := newStoreBuilder(present, len(records))
	for _, r := range records {
		b.add(r)
	}
	return b.build()
}
