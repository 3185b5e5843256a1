// Package dashboard serves the map page and the JSON API behind it.
package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sheetmap/internal/compare"
	"github.com/sells-group/sheetmap/internal/export"
	"github.com/sells-group/sheetmap/internal/palette"
	"github.com/sells-group/sheetmap/internal/sheet"
)

// Status values of a View.
const (
	StatusOK          = "ok"
	StatusNoValidData = "no_valid_data"
)

// SheetSource provides the sheets of a workbook.
type SheetSource interface {
	SheetNames(ctx context.Context) ([]string, error)
	Table(ctx context.Context, name string) (sheet.Table, error)
}

// RequestError is a caller mistake, reported as 400.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "dashboard: " + e.Reason
}

// Bounds is the south-west and north-east corner of a set of points.
type Bounds struct {
	SW sheet.LatLng `json:"sw"`
	NE sheet.LatLng `json:"ne"`
}

// View is one sheet ready for the map.
type View struct {
	Sheet    string                     `json:"sheet"`
	Status   string                     `json:"status"`
	Color    string                     `json:"color"`
	Marker   string                     `json:"marker"`
	Count    int                        `json:"count"`
	Dropped  int                        `json:"dropped"`
	Centroid *sheet.LatLng              `json:"centroid,omitempty"`
	Bounds   *Bounds                    `json:"bounds,omitempty"`
	Features *geojson.FeatureCollection `json:"features"`
}

// CompareView is several sheets on one map.
type CompareView struct {
	Status   string         `json:"status"`
	Groups   []View         `json:"groups"`
	Overlap  compare.Report `json:"overlap"`
	Centroid *sheet.LatLng  `json:"centroid,omitempty"`
	Bounds   *Bounds        `json:"bounds,omitempty"`
}

// Classification is the marker a colour maps to.
type Classification struct {
	Color     string `json:"color"`
	Marker    string `json:"marker"`
	MarkerHex string `json:"marker_hex"`
}

// PaletteEntry is one marker colour.
type PaletteEntry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Service builds map views from a workbook.
type Service struct {
	sheets  SheetSource
	palette palette.Palette
	opts    MapOptions
	metrics *Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(sheets SheetSource, p palette.Palette, opts MapOptions, metrics *Metrics) *Service {
	return &Service{sheets: sheets, palette: p, opts: opts, metrics: metrics}
}

// MapOptions returns the options passed to the map page.
func (s *Service) MapOptions() MapOptions {
	return s.opts
}

// Sheets lists the workbook's sheet names.
func (s *Service) Sheets(ctx context.Context) ([]string, error) {
	return s.sheets.SheetNames(ctx)
}

// Palette lists the marker colours in palette order.
func (s *Service) Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(s.palette))
	for i, e := range s.palette {
		out[i] = PaletteEntry{Name: e.Name, Hex: e.Color.Hex()}
	}
	return out
}

// Classify maps color onto the palette.
func (s *Service) Classify(color string) (Classification, error) {
	marker, err := palette.Classify(strings.TrimSpace(color), s.palette)
	if err != nil {
		s.countClassify("error")
		return Classification{}, err
	}
	s.countClassify("ok")
	rgb, _ := s.palette.Lookup(marker)
	return Classification{Color: color, Marker: marker, MarkerHex: rgb.Hex()}, nil
}

// Normalize loads and normalizes one sheet.
func (s *Service) Normalize(ctx context.Context, name string) (sheet.RecordSet, error) {
	t, err := s.sheets.Table(ctx, name)
	if err != nil {
		return sheet.RecordSet{}, err
	}
	rs, err := sheet.Normalize(t)
	if err != nil {
		if s.metrics != nil {
			var se *sheet.SchemaError
			if errors.As(err, &se) {
				s.metrics.SchemaErrors.Inc()
			}
		}
		return sheet.RecordSet{}, err
	}
	if s.metrics != nil {
		s.metrics.RowsKept.Add(float64(rs.Len()))
		s.metrics.RowsDropped.Add(float64(rs.Dropped))
	}
	return rs, nil
}

// Points builds the view of one sheet drawn in color. A blank or malformed
// colour uses the first default colour.
func (s *Service) Points(ctx context.Context, name, color string) (View, error) {
	rs, err := s.Normalize(ctx, name)
	if err != nil {
		return View{}, err
	}
	groups, err := s.groups([]sheet.RecordSet{rs}, []string{color})
	if err != nil {
		return View{}, err
	}
	return newView(groups[0])
}

// Compare loads the named sheets concurrently and builds one view per sheet,
// in request order, plus their term overlap and shared map centre.
func (s *Service) Compare(ctx context.Context, names, colors []string) (CompareView, error) {
	if len(names) == 0 {
		return CompareView{}, &RequestError{Reason: "at least one sheet is required"}
	}

	sets := make([]sheet.RecordSet, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			rs, err := s.Normalize(gctx, name)
			if err != nil {
				return err
			}
			sets[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CompareView{}, err
	}

	groups, err := s.groups(sets, colors)
	if err != nil {
		return CompareView{}, err
	}

	cv := CompareView{
		Status:  StatusOK,
		Groups:  make([]View, len(groups)),
		Overlap: compare.Overlap(sets),
	}
	for i, grp := range groups {
		v, err := newView(grp)
		if err != nil {
			return CompareView{}, err
		}
		cv.Groups[i] = v
	}

	c, err := compare.CombinedCentroid(groups)
	switch {
	case errors.Is(err, sheet.ErrNoValidData):
		cv.Status = StatusNoValidData
		return cv, nil
	case err != nil:
		return CompareView{}, eris.Wrap(err, "dashboard: combined centroid")
	}
	sw, ne, err := compare.CombinedBounds(groups)
	if err != nil {
		return CompareView{}, eris.Wrap(err, "dashboard: combined bounds")
	}
	cv.Centroid = &c
	cv.Bounds = &Bounds{SW: sw, NE: ne}
	return cv, nil
}

func (s *Service) groups(sets []sheet.RecordSet, colors []string) ([]compare.Group, error) {
	groups, err := compare.BuildGroups(sets, colors, s.opts.DefaultColors, s.palette)
	if err != nil {
		return nil, err
	}
	for i, g := range groups {
		if i < len(colors) && strings.TrimSpace(colors[i]) != "" && !strings.EqualFold(strings.TrimSpace(colors[i]), g.Color) {
			s.countClassify("fallback")
		} else {
			s.countClassify("ok")
		}
	}
	return groups, nil
}

func (s *Service) countClassify(result string) {
	if s.metrics != nil {
		s.metrics.Classify.WithLabelValues(result).Inc()
	}
}

func newView(g compare.Group) (View, error) {
	rs := g.Records
	fc, err := export.FeatureCollection(rs, map[string]any{"marker": g.Marker, "color": g.Color})
	if err != nil {
		return View{}, err
	}

	v := View{
		Sheet:    rs.Sheet,
		Status:   StatusOK,
		Color:    g.Color,
		Marker:   g.Marker,
		Count:    rs.Len(),
		Dropped:  rs.Dropped,
		Features: fc,
	}
	if rs.Empty() {
		v.Status = StatusNoValidData
		return v, nil
	}

	c, err := rs.Centroid()
	if err != nil {
		return View{}, eris.Wrap(err, "dashboard: centroid")
	}
	sw, ne, err := rs.Bounds()
	if err != nil {
		return View{}, eris.Wrap(err, "dashboard: bounds")
	}
	v.Centroid = &c
	v.Bounds = &Bounds{SW: sw, NE: ne}
	return v, nil
}
