// Package sheet turns raw spreadsheet rows into validated, centered point records.
package sheet

import (
	"fmt"
)

// Required column names for a sheet that can be placed on a map.
const (
	ColumnTerm      = "Term"
	ColumnLatitude  = "Latitude"
	ColumnLongitude = "Longitude"
)

// RawRow maps a column name to the cell value read from one spreadsheet row.
// Values are nil, strings, numeric kinds, json.Number or bool.
type RawRow map[string]any

// Table is one sheet of a workbook: its header and data rows.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}

// HasColumn reports whether the header contains name.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PointRecord is a labelled point whose coordinates are both finite.
type PointRecord struct {
	Term      string  `json:"term"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecordSet is the normalized form of one sheet. Records keep input row order.
type RecordSet struct {
	Sheet   string        `json:"sheet"`
	Records []PointRecord `json:"records"`
	Dropped int           `json:"dropped"`
}

// Normalize validates every row of t and keeps those with parseable coordinates.
// A header without Latitude or Longitude yields a *SchemaError; a sheet whose rows
// all fail validation yields an empty RecordSet and no error.
func Normalize(t Table) (RecordSet, error) {
	var missing []string
	for _, col := range []string{ColumnLatitude, ColumnLongitude} {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return RecordSet{}, &SchemaError{Sheet: t.Name, Missing: missing}
	}

	set := RecordSet{
		Sheet:   t.Name,
		Records: make([]PointRecord, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		lat, ok := ParseCoordinate(row[ColumnLatitude])
		if !ok {
			set.Dropped++
			continue
		}
		lng, ok := ParseCoordinate(row[ColumnLongitude])
		if !ok {
			set.Dropped++
			continue
		}
		set.Records = append(set.Records, PointRecord{
			Term:      termOf(row[ColumnTerm]),
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return set, nil
}

func termOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
