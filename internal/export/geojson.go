package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/sheetmap/internal/sheet"
)

const srid = 4326

// Point converts a record to a WGS84 point. GeoJSON and WKT order is lon, lat.
func Point(r sheet.PointRecord) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}).SetSRID(srid)
}

// FeatureCollection builds one point feature per record with properties term,
// sheet and everything in props. The collection bbox is set when set is not empty.
func FeatureCollection(set sheet.RecordSet, props map[string]any) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, set.Len())}
	for _, r := range set.Records {
		p := make(map[string]any, len(props)+2)
		for k, v := range props {
			p[k] = v
		}
		p["term"] = r.Term
		p["sheet"] = set.Sheet
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   Point(r),
			Properties: p,
		})
	}

	if !set.Empty() {
		sw, ne, err := set.Bounds()
		if err != nil {
			return nil, eris.Wrap(err, "export: bounds")
		}
		fc.BBox = geom.NewBounds(geom.XY).Set(sw.Lng, sw.Lat, ne.Lng, ne.Lat)
	}
	return fc, nil
}

// WriteGeoJSON encodes set as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, set sheet.RecordSet, props map[string]any) error {
	fc, err := FeatureCollection(set, props)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}
