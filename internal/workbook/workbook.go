package workbook

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the requested name.
var ErrSheetNotFound = eris.New("workbook: sheet not found")

// Workbook is a loaded set of sheets in workbook order.
type Workbook struct {
	Source string
	tables []sheet.Table
	index  map[string]int
}

// New builds a workbook from tables. A later table with a name already seen is ignored.
func New(source string, tables []sheet.Table) *Workbook {
	w := &Workbook{Source: source, index: make(map[string]int, len(tables))}
	for _, t := range tables {
		if _, ok := w.index[t.Name]; ok {
			continue
		}
		w.index[t.Name] = len(w.tables)
		w.tables = append(w.tables, t)
	}
	return w
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.tables))
	for i, t := range w.tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the named sheet.
func (w *Workbook) Table(name string) (sheet.Table, error) {
	i, ok := w.index[name]
	if !ok {
		return sheet.Table{}, eris.Wrapf(ErrSheetNotFound, "sheet %q", name)
	}
	return w.tables[i], nil
}

// Len returns the number of sheets.
func (w *Workbook) Len() int {
	return len(w.tables)
}
