package engine

import (
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// AggFunc reduces the metric values of a group to one number.
type AggFunc int

const (
	Mean AggFunc = iota
	Sum
	Count
)

func (f AggFunc) String() string {
	switch f {
	case Sum:
		return "sum"
	case Count:
		return "count"
	default:
		return "mean"
	}
}

// Order controls the ordering of aggregation results.
type Order int

const (
	// OrderKeyAsc sorts by group keys; years compare numerically.
	OrderKeyAsc Order = iota
	// OrderValueDesc ranks groups by value, ties broken by key.
	OrderValueDesc
)

// Query describes a group-by-then-reduce over a view.
type Query struct {
	GroupBy []Dimension
	Metric  Metric // ignored for Count
	Func    AggFunc
	Order   Order
}

// Group is one output row of an aggregation.
type Group struct {
	Keys  []string
	Value float64
	Count int
}

// Key returns the group's first key.
func (g Group) Key() string {
	if len(g.Keys) == 0 {
		return ""
	}
	return g.Keys[0]
}

type groupAcc struct {
	keys  []string
	rows  int
	sum   float64
	valid int
}

func (a *groupAcc) merge(b *groupAcc) {
	a.rows += b.rows
	a.sum += b.sum
	a.valid += b.valid
}

// parallelRows is the view size from which Aggregate splits the scan into
// one partial aggregate per CPU.
const parallelRows = 1 << 16

// Aggregate groups the view by q.GroupBy and reduces q.Metric with q.Func.
// Rows with a missing grouping key are skipped. Mean and Sum ignore missing
// values; a group with no valid values has mean NaN and sum 0. An empty view
// yields nil.
func Aggregate(v View, q Query) []Group {
	n := v.Len()
	if n == 0 {
		return nil
	}

	var accs map[string]*groupAcc
	workers := runtime.NumCPU()
	if n < parallelRows || workers < 2 {
		accs = scan(v, q, 0, n)
	} else {
		accs = scanParallel(v, q, workers)
	}

	groups := make([]Group, 0, len(accs))
	for _, acc := range accs {
		g := Group{Keys: acc.keys, Count: acc.rows}
		switch q.Func {
		case Sum:
			g.Value = acc.sum
		case Count:
			g.Value = float64(acc.rows)
		default:
			g.Value = math.NaN()
			if acc.valid > 0 {
				g.Value = acc.sum / float64(acc.valid)
			}
		}
		groups = append(groups, g)
	}

	SortGroups(groups, q.GroupBy, q.Order)
	return groups
}

// scanParallel aggregates contiguous chunks concurrently, then merges the
// partials in chunk order so sums are reproducible for a given CPU count.
func scanParallel(v View, q Query, workers int) map[string]*groupAcc {
	n := v.Len()
	chunk := (n + workers - 1) / workers
	partials := make([]map[string]*groupAcc, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			partials[w] = scan(v, q, s, e)
		}(w, start, end)
	}
	wg.Wait()

	merged := partials[0]
	for _, p := range partials[1:] {
		for id, acc := range p {
			if m, ok := merged[id]; ok {
				m.merge(acc)
			} else {
				merged[id] = acc
			}
		}
	}
	return merged
}

// scan aggregates view positions [start, end).
func scan(v View, q Query, start, end int) map[string]*groupAcc {
	accs := make(map[string]*groupAcc)
	keys := make([]string, len(q.GroupBy))

rows:
	for i := start; i < end; i++ {
		for k, d := range q.GroupBy {
			keys[k] = v.Label(i, d)
			if keys[k] == "" {
				continue rows
			}
		}
		id := strings.Join(keys, "\x1f")
		acc, ok := accs[id]
		if !ok {
			acc = &groupAcc{keys: append([]string(nil), keys...)}
			accs[id] = acc
		}
		acc.rows++
		if q.Func == Count {
			continue
		}
		if x := v.Value(i, q.Metric); !math.IsNaN(x) {
			acc.sum += x
			acc.valid++
		}
	}
	return accs
}

// SortGroups orders groups by key, then optionally by value descending.
// NaN values rank last.
func SortGroups(groups []Group, dims []Dimension, order Order) {
	sort.Slice(groups, func(i, j int) bool {
		return compareKeys(groups[i].Keys, groups[j].Keys, dims) < 0
	})
	if order != OrderValueDesc {
		return
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Value, groups[j].Value
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
}

func compareKeys(a, b []string, dims []Dimension) int {
	for k := range a {
		if k >= len(b) {
			return 1
		}
		var c int
		if k < len(dims) && dims[k] == DimYear {
			c = compareInts(a[k], b[k])
		} else {
			c = strings.Compare(a[k], b[k])
		}
		if c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}

func compareInts(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Limit truncates groups to the first n entries; n <= 0 keeps everything.
func Limit(groups []Group, n int) []Group {
	if n > 0 && len(groups) > n {
		return groups[:n]
	}
	return groups
}
