package engine

import (
	"bufio"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMissingKey is returned when a row lacks a Year, Country or Industry.
	ErrMissingKey = errors.New("missing required value")
	// ErrYearRange is returned for a Year that does not fit the store's int32 column.
	ErrYearRange = errors.New("year out of range")
)

// Cells that parse as missing values.
var nullTokens = []string{"", "NA", "N/A", "NaN", "nan", "null"}

const chunkRows = 1024

// columnPlan says where each known column sits in the CSV header.
type columnPlan struct {
	year, country, industry, tool, regulation int
	metrics                                   [NumMetrics]int
}

// LoadCSV reads the dataset at path. Any failure is fatal to the caller;
// there is no partial load.
func LoadCSV(path string) (*ColumnStore, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	store, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	slog.Debug("dataset loaded", "path", path, "rows", store.Len(), "elapsed", time.Since(start))
	return store, nil
}

// ReadCSV parses a CSV stream with a header row into a ColumnStore.
// Columns are matched by header name, so their order is free; unknown
// columns are ignored.
func ReadCSV(r io.Reader) (*ColumnStore, error) {
	br := bufio.NewReader(r)

	headerLine, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && headerLine != "") {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header, err := stdcsv.NewReader(strings.NewReader(headerLine)).Read()
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	schema, plan, present, err := planColumns(header)
	if err != nil {
		return nil, err
	}

	rdr := csv.NewReader(br, schema,
		csv.WithAllocator(memory.DefaultAllocator),
		csv.WithChunk(chunkRows),
		csv.WithNullReader(true, nullTokens...),
	)
	defer rdr.Release()

	b := newStoreBuilder(present, chunkRows)
	line := 1
	for rdr.Next() {
		rec := rdr.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			line++
			r, err := recordAt(rec, row, &plan)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.add(r)
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}
	return b.build(), nil
}

func planColumns(header []string) (*arrow.Schema, columnPlan, [NumMetrics]bool, error) {
	plan := columnPlan{year: -1, country: -1, industry: -1, tool: -1, regulation: -1}
	for m := range plan.metrics {
		plan.metrics[m] = -1
	}
	var present [NumMetrics]bool

	fields := make([]arrow.Field, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}

		if d, ok := ParseDimension(name); ok && strings.EqualFold(name, d.Column()) {
			switch d {
			case DimYear:
				plan.year = i
				fields[i].Type = arrow.PrimitiveTypes.Int64
			case DimCountry:
				plan.country = i
			case DimIndustry:
				plan.industry = i
			case DimTool:
				plan.tool = i
			case DimRegulation:
				plan.regulation = i
			}
			continue
		}
		if m, ok := ParseMetric(name); ok && strings.EqualFold(name, m.Column()) {
			plan.metrics[m] = i
			present[m] = true
			fields[i].Type = arrow.PrimitiveTypes.Float64
		}
	}

	required := []struct {
		idx  int
		name string
	}{
		{plan.year, DimYear.Column()},
		{plan.country, DimCountry.Column()},
		{plan.industry, DimIndustry.Column()},
		{plan.tool, DimTool.Column()},
		{plan.regulation, DimRegulation.Column()},
	}
	for _, c := range required {
		if c.idx < 0 {
			return nil, plan, present, fmt.Errorf("%w: %q", ErrMissingColumn, c.name)
		}
	}
	for m := Metric(0); m < NumMetrics; m++ {
		if !present[m] && !m.Optional() {
			return nil, plan, present, fmt.Errorf("%w: %q", ErrMissingColumn, m.Column())
		}
	}

	return arrow.NewSchema(fields, nil), plan, present, nil
}

func recordAt(rec arrow.Record, row int, plan *columnPlan) (Record, error) {
	var r Record

	years := rec.Column(plan.year).(*array.Int64)
	if years.IsNull(row) {
		return r, fmt.Errorf("%w: %s", ErrMissingKey, DimYear.Column())
	}
	y := years.Value(row)
	if y < math.MinInt32 || y > math.MaxInt32 {
		return r, fmt.Errorf("%w: %d", ErrYearRange, y)
	}
	r.Year = int(y)

	var ok bool
	if r.Country, ok = stringAt(rec, plan.country, row); !ok {
		return r, fmt.Errorf("%w: %s", ErrMissingKey, DimCountry.Column())
	}
	if r.Industry, ok = stringAt(rec, plan.industry, row); !ok {
		return r, fmt.Errorf("%w: %s", ErrMissingKey, DimIndustry.Column())
	}
	r.Tool, _ = stringAt(rec, plan.tool, row)
	r.Regulation, _ = stringAt(rec, plan.regulation, row)

	for m := Metric(0); m < NumMetrics; m++ {
		r.Values[m] = math.NaN()
		if plan.metrics[m] < 0 {
			continue
		}
		col := rec.Column(plan.metrics[m]).(*array.Float64)
		if !col.IsNull(row) {
			r.Values[m] = col.Value(row)
		}
	}
	return r, nil
}

func stringAt(rec arrow.Record, col, row int) (string, bool) {
	arr := rec.Column(col).(*array.String)
	if arr.IsNull(row) {
		return "", false
	}
	s := strings.TrimSpace(arr.Value(row))
	return s, s != ""
}
