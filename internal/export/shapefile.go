package export

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// TermField is the DBF attribute holding the record term.
const TermField = "TERM"

const termFieldSize = 254

// WriteShapefile writes set as a POINT shapefile at path (.shp, .shx and .dbf).
// Terms longer than the DBF field are cut at a rune boundary.
func WriteShapefile(path string, set sheet.RecordSet) error {
	if !strings.EqualFold(filepath.Ext(path), ".shp") {
		return eris.Errorf("export: shapefile path %q must end in .shp", path)
	}
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.StringField(TermField, termFieldSize)}); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for _, r := range set.Records {
		idx := w.Write(&shp.Point{X: r.Longitude, Y: r.Latitude})
		if err := w.WriteAttribute(int(idx), 0, truncate(r.Term, termFieldSize)); err != nil {
			return eris.Wrapf(err, "export: write attribute for record %d", idx)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
