// Package compare puts several normalized sheets side by side: one marker colour
// per sheet, a shared map centre and term-overlap statistics.
package compare

import (
	"errors"
	"strings"

	"github.com/sells-group/sheetmap/internal/palette"
	"github.com/sells-group/sheetmap/internal/sheet"
)

var defaultColors = []string{"#1E88E5", "#4CAF50", "#9C27B0", "#FB8C00"}

// DefaultColors returns the colours assigned to groups without one, in order.
func DefaultColors() []string {
	out := make([]string, len(defaultColors))
	copy(out, defaultColors)
	return out
}

// DefaultColor returns the default colour of the i-th group, cycling.
func DefaultColor(i int) string {
	return defaultColors[i%len(defaultColors)]
}

// Group is one sheet of a comparison with its requested colour and the palette
// marker that colour maps to.
type Group struct {
	Sheet   string          `json:"sheet"`
	Color   string          `json:"color"`
	Marker  string          `json:"marker"`
	Records sheet.RecordSet `json:"-"`
}

// BuildGroups assigns colors[i] to sets[i]. Missing, blank or unparseable
// colours take the slot's entry from defaults, cycling; nil defaults use
// DefaultColors. A default that itself does not parse falls back to the
// built-in one. Only an invalid palette is an error.
func BuildGroups(sets []sheet.RecordSet, colors, defaults []string, p palette.Palette) ([]Group, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	groups := make([]Group, len(sets))
	for i, rs := range sets {
		def := DefaultColor(i)
		if len(defaults) > 0 && strings.TrimSpace(defaults[i%len(defaults)]) != "" {
			def = strings.TrimSpace(defaults[i%len(defaults)])
		}
		color := def
		if i < len(colors) && strings.TrimSpace(colors[i]) != "" {
			color = strings.TrimSpace(colors[i])
		}

		color, marker := classifyWithFallback(p, color, def, DefaultColor(i))
		groups[i] = Group{Sheet: rs.Sheet, Color: color, Marker: marker, Records: rs}
	}
	return groups, nil
}

// classifyWithFallback returns the first candidate that parses and its marker.
func classifyWithFallback(p palette.Palette, candidates ...string) (string, string) {
	for _, c := range candidates {
		marker, err := palette.Classify(c, p)
		var perr *palette.ParseError
		if !errors.As(err, &perr) {
			return c, marker
		}
	}
	last := candidates[len(candidates)-1]
	return last, palette.ClassifyOr(last, p[0].Name, p)
}

func merged(groups []Group) sheet.RecordSet {
	var all sheet.RecordSet
	for _, g := range groups {
		all.Records = append(all.Records, g.Records.Records...)
		all.Dropped += g.Records.Dropped
	}
	return all
}

// CombinedCentroid is the centroid of every record of every group.
// It returns sheet.ErrNoValidData when all groups are empty.
func CombinedCentroid(groups []Group) (sheet.LatLng, error) {
	return merged(groups).Centroid()
}

// CombinedBounds is the bounding box of every record of every group.
func CombinedBounds(groups []Group) (sheet.LatLng, sheet.LatLng, error) {
	return merged(groups).Bounds()
}
