package palette

// Classify returns the name of the palette entry nearest to query by squared
// Euclidean distance in RGB space. The first entry wins a tie.
func Classify(query string, p Palette) (string, error) {
	if len(p) == 0 {
		return "", &ConfigError{Reason: "palette is empty"}
	}
	c, err := ParseHex(query)
	if err != nil {
		return "", err
	}
	return Nearest(c, p), nil
}

// ClassifyOr classifies query, returning fallback when query is not a valid colour.
// An empty palette also yields fallback.
func ClassifyOr(query, fallback string, p Palette) string {
	name, err := Classify(query, p)
	if err != nil {
		return fallback
	}
	return name
}

// Nearest returns the entry name closest to c. p must be non-empty.
func Nearest(c RGB, p Palette) string {
	best := 0
	bestDist := distance(c, p[0].Color)
	for i := 1; i < len(p); i++ {
		// Strict comparison keeps the earliest entry on ties.
		if d := distance(c, p[i].Color); d < bestDist {
			best, bestDist = i, d
		}
	}
	return p[best].Name
}

func distance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
