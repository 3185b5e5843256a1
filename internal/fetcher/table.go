package fetcher

import (
	"strings"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// buildTable maps each data row onto the header. Blank header cells are skipped,
// and the first of duplicated header names wins. Rows with no values are dropped.
func buildTable(name string, header []string, rows [][]any) sheet.Table {
	t := sheet.Table{Name: name, Rows: make([]sheet.RawRow, 0, len(rows))}

	index := make(map[int]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		index[i] = h
		t.Columns = append(t.Columns, h)
	}

	for _, cells := range rows {
		row := make(sheet.RawRow, len(index))
		for i, v := range cells {
			col, ok := index[i]
			if !ok || v == nil {
				continue
			}
			row[col] = v
		}
		if len(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
