package engine

// View is a read-only projection of a ColumnStore: an index list into it.
// Views are cheap to derive and never copy column data.
type View struct {
	store *ColumnStore
	idx   []int32
}

// Len is the number of rows in the view.
func (v View) Len() int { return len(v.idx) }

// Store returns the backing store.
func (v View) Store() *ColumnStore { return v.store }

// Row maps a view position to a store row.
func (v View) Row(i int) int { return int(v.idx[i]) }

// Year returns the year of the i-th row.
func (v View) Year(i int) int { return int(v.store.Years[v.idx[i]]) }

// Value returns metric m of the i-th row. NaN means missing.
func (v View) Value(i int, m Metric) float64 { return v.store.Values[m][v.idx[i]] }

// Label returns the string value of dimension d for the i-th row.
// Missing categoricals are "".
func (v View) Label(i int, d Dimension) string {
	if d == DimYear {
		return itoa(v.Year(i))
	}
	dict, ids := v.store.column(d)
	return lookup(dict, ids[v.idx[i]])
}

// Record materialises the i-th row.
func (v View) Record(i int) Record { return v.store.Record(int(v.idx[i])) }

// Records materialises up to limit rows starting at offset.
// A non-positive limit returns every remaining row.
func (v View) Records(offset, limit int) []Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= v.Len() {
		return []Record{}
	}
	end := v.Len()
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Record, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, v.Record(i))
	}
	return out
}

// Where narrows the view to rows whose dimension d equals value.
func (v View) Where(d Dimension, value string) View {
	indices := make([]int32, 0)
	for i := range v.idx {
		if v.Label(i, d) == value {
			indices = append(indices, v.idx[i])
		}
	}
	return View{store: v.store, idx: indices}
}

// Distinct returns the distinct non-missing values of d in first-seen order.
func (v View) Distinct(d Dimension) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range v.idx {
		s := v.Label(i, d)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
