package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// CSVRow is one line of the CSV export.
type CSVRow struct {
	Term      string  `csv:"term"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
	WKT       string  `csv:"wkt"`
}

// WriteCSV writes a header and one row per record. An empty set still gets a header.
func WriteCSV(w io.Writer, set sheet.RecordSet) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if set.Empty() {
		if err := enc.EncodeHeader(CSVRow{}); err != nil {
			return eris.Wrap(err, "export: encode csv header")
		}
	}
	for _, r := range set.Records {
		g, err := wkt.Marshal(Point(r))
		if err != nil {
			return eris.Wrap(err, "export: marshal wkt")
		}
		row := CSVRow{Term: r.Term, Latitude: r.Latitude, Longitude: r.Longitude, WKT: g}
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "export: encode csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}
