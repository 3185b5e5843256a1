package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetName string // if set, only this sheet is read
	SkipRows  int    // rows above the header row
}

// XLSXSheetNames returns the sheet names of an XLSX file in workbook order.
func XLSXSheetNames(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	names := make([]string, len(f.Sheets))
	for i, s := range f.Sheets {
		names[i] = s.Name
	}
	return names, nil
}

// ReadXLSXTables reads sheets of an XLSX file as tables. The first row after
// SkipRows is the header. Numeric cells become float64, empty cells are omitted
// and all other cells keep their display string.
func ReadXLSXTables(path string, opts XLSXOptions) ([]sheet.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheets := f.Sheets
	if opts.SheetName != "" {
		s, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		sheets = []*xlsx.Sheet{s}
	}

	tables := make([]sheet.Table, 0, len(sheets))
	for _, s := range sheets {
		tables = append(tables, sheetToTable(s, opts.SkipRows))
	}
	return tables, nil
}

func sheetToTable(s *xlsx.Sheet, skip int) sheet.Table {
	var header []string
	var rows [][]any
	for i, row := range s.Rows {
		if i < skip || row == nil {
			continue
		}
		if header == nil {
			header = rowToStrings(row)
			continue
		}
		rows = append(rows, rowToValues(row))
	}
	return buildTable(s.Name, header, rows)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func rowToValues(row *xlsx.Row) []any {
	cells := make([]any, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellValue(cell)
	}
	return cells
}

func cellValue(cell *xlsx.Cell) any {
	if cell == nil {
		return nil
	}
	if cell.Type() == xlsx.CellTypeNumeric {
		if f, err := cell.Float(); err == nil {
			return f
		}
	}
	s := cell.String()
	if s == "" {
		return nil
	}
	return s
}
