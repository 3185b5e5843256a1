// Package export writes normalized point records to GeoJSON, ESRI shapefiles and CSV.
package export

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatGeoJSON   Format = "geojson"
	FormatShapefile Format = "shp"
	FormatCSV       Format = "csv"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatGeoJSON, FormatShapefile, FormatCSV}
}

// ParseFormat parses a format name, case-insensitively. "json" is accepted for geojson.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geojson", "json":
		return FormatGeoJSON, nil
	case "shp", "shapefile":
		return FormatShapefile, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want geojson, shp or csv)", s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatShapefile:
		return ".shp"
	case FormatCSV:
		return ".csv"
	default:
		return ".geojson"
	}
}

// ToFile writes set to path in format f. props are added to every GeoJSON feature.
func ToFile(path string, f Format, set sheet.RecordSet, props map[string]any) error {
	if f == FormatShapefile {
		return WriteShapefile(path, set)
	}

	out, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}

	switch f {
	case FormatGeoJSON:
		err = WriteGeoJSON(out, set, props)
	case FormatCSV:
		err = WriteCSV(out, set)
	default:
		err = eris.Errorf("export: unknown format %q", f)
	}
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = eris.Wrap(closeErr, "export: close file")
	}
	return err
}
