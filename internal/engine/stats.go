package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one histogram bucket covering [Lower, Upper).
// The last bin of a histogram also includes Upper.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Histogram splits the finite values of m into equal-width bins between
// their minimum and maximum. It returns nil when there is nothing to count.
func Histogram(v View, m Metric, bins int) []Bin {
	xs := finiteValuesOf(v, m)
	if len(xs) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(xs)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Box is the five-number summary of one category.
type Box struct {
	Category string
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	// Whiskers end at the most extreme values within 1.5 IQR of the box.
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
	Count        int
}

// BoxStats computes a Box per category of d over the non-missing values of m.
// Categories are sorted ascending; categories without values are omitted.
func BoxStats(v View, d Dimension, m Metric) []Box {
	byCat := make(map[string][]float64)
	for i := 0; i < v.Len(); i++ {
		cat := v.Label(i, d)
		x := v.Value(i, m)
		if cat == "" || math.IsNaN(x) {
			continue
		}
		byCat[cat] = append(byCat[cat], x)
	}

	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	if d == DimYear {
		sort.Slice(cats, func(i, j int) bool { return compareInts(cats[i], cats[j]) < 0 })
	} else {
		sort.Strings(cats)
	}

	out := make([]Box, 0, len(cats))
	for _, c := range cats {
		out = append(out, boxOf(c, byCat[c]))
	}
	return out
}

func boxOf(category string, xs []float64) Box {
	sort.Float64s(xs)
	b := Box{
		Category: category,
		Min:      xs[0],
		Q1:       quantile(xs, 0.25),
		Median:   quantile(xs, 0.5),
		Q3:       quantile(xs, 0.75),
		Max:      xs[len(xs)-1],
		Count:    len(xs),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, x := range xs {
		if x < lowFence || x > highFence {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, x)
		b.UpperWhisker = math.Max(b.UpperWhisker, x)
	}
	return b
}

// quantile interpolates linearly between closest ranks of sorted xs,
// the estimator box plots conventionally use.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// CorrelationMatrix is a labelled square matrix of Pearson coefficients.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// Correlation computes pairwise Pearson coefficients over Year and every
// present metric, using only rows where both values are present. Cells with
// fewer than two complete pairs, or zero variance, are NaN.
func Correlation(v View) CorrelationMatrix {
	metrics := v.Store().PresentMetrics()
	cols := make([][]float64, 0, len(metrics)+1)
	labels := make([]string, 0, len(metrics)+1)

	years := make([]float64, v.Len())
	for i := range years {
		years[i] = float64(v.Year(i))
	}
	cols = append(cols, years)
	labels = append(labels, DimYear.Column())
	for _, m := range metrics {
		col := make([]float64, v.Len())
		for i := range col {
			col[i] = v.Value(i, m)
		}
		cols = append(cols, col)
		labels = append(labels, m.Column())
	}

	out := CorrelationMatrix{Labels: labels, Values: make([][]float64, len(cols))}
	for i := range cols {
		out.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pearson(cols[i], cols[j])
			out.Values[i][j] = r
			out.Values[j][i] = r
		}
	}
	return out
}

func pearson(a, b []float64) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	_, vx := stat.MeanVariance(x, nil)
	_, vy := stat.MeanVariance(y, nil)
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Point is one scatter plot marker.
type Point struct {
	X        float64
	Y        float64
	Industry string
	Country  string
	Year     int
}

// Points projects the view onto two metrics, skipping rows missing either.
func Points(v View, x, y Metric) []Point {
	out := make([]Point, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		px, py := v.Value(i, x), v.Value(i, y)
		if math.IsNaN(px) || math.IsNaN(py) {
			continue
		}
		out = append(out, Point{
			X:        px,
			Y:        py,
			Industry: v.Label(i, DimIndustry),
			Country:  v.Label(i, DimCountry),
			Year:     v.Year(i),
		})
	}
	return out
}

// Node is a level of a sunburst hierarchy.
type Node struct {
	Name     string
	Value    float64
	Children []Node
}

// Hierarchy sums m over outer then inner dimension. Outer nodes carry the
// total of their children; both levels are sorted by name.
func Hierarchy(v View, outer, inner Dimension, m Metric) []Node {
	groups := Aggregate(v, Query{GroupBy: []Dimension{outer, inner}, Metric: m, Func: Sum})
	out := make([]Node, 0)
	for _, g := range groups {
		if len(out) == 0 || out[len(out)-1].Name != g.Keys[0] {
			out = append(out, Node{Name: g.Keys[0]})
		}
		parent := &out[len(out)-1]
		parent.Children = append(parent.Children, Node{Name: g.Keys[1], Value: g.Value})
		parent.Value += g.Value
	}
	return out
}

// finiteValuesOf skips missing and infinite values.
func finiteValuesOf(v View, m Metric) []float64 {
	out := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if x := v.Value(i, m); !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
