// Package palette maps arbitrary hex colours onto a small, ordered set of named
// marker colours.
package palette

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Entry is one named palette colour.
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	Color RGB    `json:"color" yaml:"-"`
}

// Palette is an ordered list of named colours. Order breaks distance ties.
type Palette []Entry

// The marker colours a Leaflet awesome-markers icon can be drawn in.
var defaultPalette = Palette{
	{Name: "red", Color: RGB{0xD6, 0x3E, 0x2A}},
	{Name: "blue", Color: RGB{0x38, 0xAA, 0xDD}},
	{Name: "green", Color: RGB{0x72, 0xB0, 0x26}},
	{Name: "purple", Color: RGB{0xD2, 0x52, 0xB9}},
	{Name: "orange", Color: RGB{0xF6, 0x97, 0x30}},
	{Name: "darkred", Color: RGB{0xA2, 0x33, 0x36}},
	{Name: "lightred", Color: RGB{0xFF, 0x8E, 0x7F}},
	{Name: "darkblue", Color: RGB{0x00, 0x67, 0xA3}},
	{Name: "darkgreen", Color: RGB{0x72, 0x82, 0x24}},
	{Name: "cadetblue", Color: RGB{0x43, 0x69, 0x78}},
	{Name: "darkpurple", Color: RGB{0x5B, 0x39, 0x6B}},
	{Name: "pink", Color: RGB{0xFF, 0x91, 0xEA}},
	{Name: "lightblue", Color: RGB{0x8A, 0xDA, 0xFF}},
	{Name: "lightgreen", Color: RGB{0xBB, 0xF9, 0x70}},
}

// DefaultPalette returns a copy of the 14 marker colours.
func DefaultPalette() Palette {
	out := make(Palette, len(defaultPalette))
	copy(out, defaultPalette)
	return out
}

// Names returns the entry names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, e := range p {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the colour registered under name.
func (p Palette) Lookup(name string) (RGB, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Color, true
		}
	}
	return RGB{}, false
}

// Validate checks the palette is usable for classification.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return &ConfigError{Reason: "palette is empty"}
	}
	seen := make(map[string]bool, len(p))
	for i, e := range p {
		if strings.TrimSpace(e.Name) == "" {
			return &ConfigError{Reason: fmt.Sprintf("entry %d has no name", i)}
		}
		if seen[e.Name] {
			return &ConfigError{Reason: fmt.Sprintf("duplicate entry %q", e.Name)}
		}
		seen[e.Name] = true
	}
	return nil
}

var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ParseHex parses #RRGGBB or RRGGBB.
func ParseHex(s string) (RGB, error) {
	if !hexPattern.MatchString(s) {
		return RGB{}, &ParseError{Input: s}
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(s, "#"))
	if err != nil {
		return RGB{}, &ParseError{Input: s, Err: err}
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
