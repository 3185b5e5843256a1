package palette

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ReferenceColors(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"#1E88E5", "blue"},
		{"#4CAF50", "green"},
		{"#9C27B0", "purple"},
		{"1e88e5", "blue"},
		{"#FB8C00", "orange"},
		{"#D63E2A", "red"},
		{"#000000", "darkpurple"},
		{"#FFFFFF", "pink"},
	}

	p := DefaultPalette()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Classify(tt.query, p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_ExactEntryMatchesItself(t *testing.T) {
	p := DefaultPalette()
	for _, e := range p {
		got, err := Classify(e.Color.Hex(), p)
		require.NoError(t, err)
		assert.Equal(t, e.Name, got)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	p := DefaultPalette()
	first, err := Classify("#123456", p)
	require.NoError(t, err)
	second, err := Classify("#123456", p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassify_NoLeadingHash(t *testing.T) {
	got, err := Classify("#9C27B0", DefaultPalette())
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, "#"))
}

func TestClassify_ParseError(t *testing.T) {
	for _, q := range []string{"not-a-color", "", "#12345", "#1234567", "##123456", "#GGGGGG", "#fff"} {
		t.Run(q, func(t *testing.T) {
			_, err := Classify(q, DefaultPalette())
			require.Error(t, err)
			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestClassify_EmptyPalette(t *testing.T) {
	for _, p := range []Palette{nil, {}} {
		_, err := Classify("#1E88E5", p)
		require.Error(t, err)
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce))
	}

	// An empty palette is reported even when the query is malformed.
	_, err := Classify("nope", Palette{})
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestClassify_TieBreakIsPaletteOrder(t *testing.T) {
	// #7F8080 is 127 away from both entries on the red channel.
	p := Palette{
		{Name: "dark", Color: RGB{0x00, 0x80, 0x80}},
		{Name: "light", Color: RGB{0xFE, 0x80, 0x80}},
	}
	for i := 0; i < 10; i++ {
		got, err := Classify("#7F8080", p)
		require.NoError(t, err)
		assert.Equal(t, "dark", got)
	}

	p = Palette{
		{Name: "first", Color: RGB{10, 0, 0}},
		{Name: "second", Color: RGB{0, 10, 0}},
	}
	for i := 0; i < 10; i++ {
		got, err := Classify("#000000", p)
		require.NoError(t, err)
		assert.Equal(t, "first", got)
	}

	p[0], p[1] = p[1], p[0]
	got, err := Classify("#000000", p)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestClassifyOr(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, "blue", ClassifyOr("#1E88E5", "red", p))
	assert.Equal(t, "red", ClassifyOr("bogus", "red", p))
	assert.Equal(t, "red", ClassifyOr("#1E88E5", "red", nil))
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	require.Len(t, p, 14)
	assert.Equal(t, []string{
		"red", "blue", "green", "purple", "orange", "darkred", "lightred",
		"darkblue", "darkgreen", "cadetblue", "darkpurple", "pink", "lightblue", "lightgreen",
	}, p.Names())
	require.NoError(t, p.Validate())

	// Callers get a copy.
	p[0].Name = "changed"
	assert.Equal(t, "red", DefaultPalette()[0].Name)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1E88E5")
	require.NoError(t, err)
	assert.Equal(t, RGB{30, 136, 229}, c)
	assert.Equal(t, "#1e88e5", c.Hex())

	c, err = ParseHex("00ff7f")
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 255, 127}, c)
}

func TestLookup(t *testing.T) {
	c, ok := DefaultPalette().Lookup("blue")
	require.True(t, ok)
	assert.Equal(t, "#38aadd", c.Hex())

	_, ok = DefaultPalette().Lookup("teal")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Palette
		wantErr string
	}{
		{"empty", Palette{}, "palette is empty"},
		{"blank name", Palette{{Name: " "}}, "has no name"},
		{"duplicate", Palette{{Name: "a"}, {Name: "a"}}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	doc := `
- name: sea
  hex: "#0000ff"
- name: land
  hex: "00ff00"
`
	p, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"sea", "land"}, p.Names())

	got, err := Classify("#1010f0", p)
	require.NoError(t, err)
	assert.Equal(t, "sea", got)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"empty list", "[]"},
		{"bad hex", "- name: x\n  hex: nope\n"},
		{"not a list", "name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: only\n  hex: \"#abcdef\"\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, RGB{0xab, 0xcd, 0xef}, p[0].Color)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
