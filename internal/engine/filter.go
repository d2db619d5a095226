package engine

import (
	"math"
	"strconv"
)

// Selection is the set of years, countries and industries chosen by the user.
// A nil slice selects everything in that dimension; a non-nil empty slice
// selects nothing. Values outside the dataset's domain match no row.
type Selection struct {
	Years      []int
	Countries  []string
	Industries []string
}

// SelectAll is the default selection.
func SelectAll() Selection { return Selection{} }

// Filter returns the rows whose year, country and industry are all selected.
// Dimensions are AND-combined; values within a dimension are OR-combined.
func Filter(cs *ColumnStore, sel Selection) View {
	yearOK := yearMask(sel.Years)
	countryOK := dictMask(cs.CountryDict, sel.Countries)
	industryOK := dictMask(cs.IndustryDict, sel.Industries)

	// Single pass over the ID columns; the masks turn set membership into
	// array indexing.
	indices := make([]int32, 0, cs.Len())
	for i := 0; i < cs.Len(); i++ {
		if yearOK != nil {
			if _, ok := yearOK[cs.Years[i]]; !ok {
				continue
			}
		}
		if countryOK != nil && !idSelected(countryOK, cs.CountryIDs[i]) {
			continue
		}
		if industryOK != nil && !idSelected(industryOK, cs.IndustryIDs[i]) {
			continue
		}
		indices = append(indices, int32(i))
	}
	return View{store: cs, idx: indices}
}

func yearMask(years []int) map[int32]struct{} {
	if years == nil {
		return nil
	}
	set := make(map[int32]struct{}, len(years))
	for _, y := range years {
		// Years that do not fit the column cannot match any row.
		if y < math.MinInt32 || y > math.MaxInt32 {
			continue
		}
		set[int32(y)] = struct{}{}
	}
	return set
}

// dictMask returns nil when every value is selected, otherwise a mask indexed
// by dictionary ID.
func dictMask(dict []string, selected []string) []bool {
	if selected == nil {
		return nil
	}
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	mask := make([]bool, len(dict))
	for id, s := range dict {
		_, mask[id] = want[s]
	}
	return mask
}

func idSelected(mask []bool, id int32) bool {
	return id != missingID && mask[id]
}

func itoa(n int) string { return strconv.Itoa(n) }
