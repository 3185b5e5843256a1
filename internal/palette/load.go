package palette

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// Load reads a palette from a YAML sequence of {name, hex} entries.
// Entry order in the document is the tie-break order.
func Load(r io.Reader) (Palette, error) {
	var entries []fileEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, &ConfigError{Reason: "palette is empty"}
		}
		return nil, &ConfigError{Reason: "decode palette", Err: err}
	}

	p := make(Palette, 0, len(entries))
	for _, e := range entries {
		c, err := ParseHex(e.Hex)
		if err != nil {
			return nil, &ConfigError{Reason: "entry " + e.Name, Err: err}
		}
		p = append(p, Entry{Name: e.Name, Color: c})
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads a palette from a YAML file.
func LoadFile(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Reason: "open palette file", Err: err}
	}
	defer f.Close()
	return Load(f)
}
