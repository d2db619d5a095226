package dashboard

import (
	"aidash/internal/engine"
	"aidash/internal/models"
)

// Dashboard assembles the full payload for a selection.
func Dashboard(store *engine.ColumnStore, sel engine.Selection, o Options) models.DashboardData {
	view := engine.Filter(store, sel)
	return models.DashboardData{
		Selection: SelectionOf(sel, view),
		KPIs:      KPIsOf(view),
		Charts:    Build(view, o),
	}
}

func KPIsOf(v engine.View) models.KPIs {
	k := engine.ComputeKPIs(v)
	return models.KPIs{
		AvgAdoption:        models.Float(k.AvgAdoption),
		AvgJobLoss:         models.Float(k.AvgJobLoss),
		AvgRevenue:         models.Float(k.AvgRevenue),
		AvgTrust:           models.Float(k.AvgTrust),
		AvgCollaboration:   models.Float(k.AvgCollaboration),
		TotalContentVolume: models.Float(k.TotalContentVolume),
		Countries:          k.Countries,
		Industries:         k.Industries,
		Records:            k.Records,
	}
}

// SelectionOf echoes a selection, expanding "all" to the full domain.
func SelectionOf(sel engine.Selection, v engine.View) models.Selection {
	store := v.Store()
	out := models.Selection{
		Years:      sel.Years,
		Countries:  sel.Countries,
		Industries: sel.Industries,
		Records:    v.Len(),
	}
	if out.Years == nil {
		out.Years = store.DistinctYears()
	}
	if out.Countries == nil {
		out.Countries = store.Domain(engine.DimCountry)
	}
	if out.Industries == nil {
		out.Industries = store.Domain(engine.DimIndustry)
	}
	return out
}

func DimensionsOf(store *engine.ColumnStore) models.Dimensions {
	d := models.Dimensions{
		Years:      store.DistinctYears(),
		Countries:  store.Domain(engine.DimCountry),
		Industries: store.Domain(engine.DimIndustry),
	}
	for _, m := range store.PresentMetrics() {
		d.Metrics = append(d.Metrics, models.MetricInfo{Key: m.Key(), Label: m.Column()})
	}
	return d
}

// RecordColumns is the preview column order.
func RecordColumns(store *engine.ColumnStore) []string {
	cols := []string{
		engine.DimYear.Column(),
		engine.DimCountry.Column(),
		engine.DimIndustry.Column(),
	}
	for _, m := range store.PresentMetrics() {
		cols = append(cols, m.Column())
	}
	return append(cols, engine.DimTool.Column(), engine.DimRegulation.Column())
}

// Records pages through the filtered rows.
func Records(v engine.View, offset, limit int) models.Table {
	store := v.Store()
	t := models.Table{
		Columns: RecordColumns(store),
		Rows:    [][]any{},
		Total:   v.Len(),
		Limit:   limit,
		Offset:  offset,
	}
	metrics := store.PresentMetrics()
	for _, r := range v.Records(offset, limit) {
		row := []any{r.Year, r.Country, r.Industry}
		for _, m := range metrics {
			row = append(row, models.Float(r.Value(m)))
		}
		t.Rows = append(t.Rows, append(row, r.Tool, r.Regulation))
	}
	return t
}
