package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errNoRows = errors.New("dataset has no rows")

// Load fetches ref from src and parses it. Workbooks (.xlsx) are read from
// their first sheet; anything else is treated as CSV. Every failure,
// including an empty table, is returned as a *DataLoadError.
func Load(ctx context.Context, src Source, ref string) ([]DataPoint, error) {
	rc, err := src.Open(ctx, ref)
	if err != nil {
		return nil, &DataLoadError{Ref: ref, Err: err}
	}
	defer rc.Close()

	var points []DataPoint
	if strings.EqualFold(path.Ext(ref), ".xlsx") {
		points, err = ParseXLSX(rc)
	} else {
		points, err = ParseCSV(rc)
	}
	if err != nil {
		return nil, &DataLoadError{Ref: ref, Err: err}
	}
	return points, nil
}

// ParseCSV reads a CSV table with a group,subgroup,value header.
func ParseCSV(r io.Reader) ([]DataPoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return parseTable(records)
}

// ParseXLSX reads the first sheet of a workbook laid out like the CSV files.
func ParseXLSX(r io.Reader) ([]DataPoint, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return parseTable(rows)
}

func parseTable(rows [][]string) ([]DataPoint, error) {
	if len(rows) == 0 {
		return nil, errNoRows
	}
	cols := map[string]int{"group": -1, "subgroup": -1, "value": -1}
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := cols[key]; ok && cols[key] < 0 {
			cols[key] = i
		}
	}
	for _, key := range []string{"group", "subgroup", "value"} {
		if cols[key] < 0 {
			return nil, fmt.Errorf("missing %q column", key)
		}
	}

	points := make([]DataPoint, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := n + 2
		cell := func(key string) string {
			if i := cols[key]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		raw := cell("value")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: value %q is not a number", line, raw)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("row %d: value %v out of range", line, v)
		}
		points = append(points, DataPoint{Group: cell("group"), Subgroup: cell("subgroup"), Value: v})
	}
	if len(points) == 0 {
		return nil, errNoRows
	}
	return points, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
