package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sheetmap/internal/sheet"
)

func stores() sheet.RecordSet {
	return sheet.RecordSet{
		Sheet: "Stores",
		Records: []sheet.PointRecord{
			{Term: "Store A", Latitude: 40.5, Longitude: -74.25},
			{Term: "Store B", Latitude: 41, Longitude: -73},
		},
		Dropped: 1,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "geojson", want: FormatGeoJSON},
		{in: "JSON", want: FormatGeoJSON},
		{in: " shp ", want: FormatShapefile},
		{in: "shapefile", want: FormatShapefile},
		{in: "csv", want: FormatCSV},
		{in: "kml", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, Formats(), 3)
	assert.Equal(t, ".shp", FormatShapefile.Extension())
	assert.Equal(t, ".geojson", FormatGeoJSON.Extension())
}

type featureJSON struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type collectionJSON struct {
	Type     string        `json:"type"`
	BBox     []float64     `json:"bbox"`
	Features []featureJSON `json:"features"`
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, stores(), map[string]any{"marker": "blue"}))

	var fc collectionJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-74.25, 40.5}, f.Geometry.Coordinates)
	assert.Equal(t, "Store A", f.Properties["term"])
	assert.Equal(t, "Stores", f.Properties["sheet"])
	assert.Equal(t, "blue", f.Properties["marker"])

	assert.Equal(t, []float64{-74.25, 40.5, -73, 41}, fc.BBox)
}

func TestFeatureCollection_Empty(t *testing.T) {
	fc, err := FeatureCollection(sheet.RecordSet{Sheet: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
	assert.Nil(t, fc.BBox)
}

func TestFeatureCollection_PropsNotShared(t *testing.T) {
	props := map[string]any{"marker": "red"}
	fc, err := FeatureCollection(stores(), props)
	require.NoError(t, err)
	fc.Features[0].Properties["marker"] = "green"
	assert.Equal(t, "red", fc.Features[1].Properties["marker"])
	assert.Equal(t, "red", props["marker"])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, stores()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "term,latitude,longitude,wkt", lines[0])

	var rows []CSVRow
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Store B", rows[1].Term)
	assert.InDelta(t, 41.0, rows[1].Latitude, 1e-9)
	assert.InDelta(t, -73.0, rows[1].Longitude, 1e-9)
	assert.True(t, strings.HasPrefix(rows[0].WKT, "POINT"))
}

func TestWriteCSV_EmptyHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sheet.RecordSet{}))
	assert.Equal(t, "term,latitude,longitude,wkt\n", buf.String())
}

func TestWriteShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stores.shp")
	require.NoError(t, WriteShapefile(path, stores()))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(strings.TrimSuffix(path, ".shp") + ext)
		require.NoError(t, err, ext)
	}

	reader, err := shp.Open(path)
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, TermField, strings.TrimRight(fields[0].String(), "\x00"))

	var terms []string
	var points []shp.Point
	for reader.Next() {
		_, shape := reader.Shape()
		p, ok := shape.(*shp.Point)
		require.True(t, ok)
		points = append(points, *p)
		terms = append(terms, strings.TrimSpace(strings.TrimRight(reader.Attribute(0), "\x00")))
	}
	assert.Equal(t, []string{"Store A", "Store B"}, terms)
	require.Len(t, points, 2)
	assert.InDelta(t, -74.25, points[0].X, 1e-9)
	assert.InDelta(t, 40.5, points[0].Y, 1e-9)
}

func TestWriteShapefile_BadExtension(t *testing.T) {
	err := WriteShapefile(filepath.Join(t.TempDir(), "stores.geojson"), stores())
	require.Error(t, err)
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats() {
		path := filepath.Join(dir, "out"+f.Extension())
		require.NoError(t, ToFile(path, f, stores(), nil), f)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	// "é" is two bytes; cutting inside it drops the partial rune.
	assert.Equal(t, "a", truncate("aé", 2))
}
