package dashboard

import "github.com/sells-group/sheetmap/internal/compare"

// Basemap is a tile layer the browser map can switch to.
type Basemap struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	URL         string `json:"url" yaml:"url" mapstructure:"url"`
	Attribution string `json:"attribution" yaml:"attribution" mapstructure:"attribution"`
}

// MapOptions are passed through to the map page. The page centres on the
// centroid at ZoomStart unless FitBounds is set.
type MapOptions struct {
	ZoomStart     int       `json:"zoom_start"`
	FitBounds     bool      `json:"fit_bounds"`
	Cluster       bool      `json:"cluster"`
	DefaultColors []string  `json:"default_colors"` // per-group colours used when a request names none
	Basemaps      []Basemap `json:"basemaps"`
}

// DefaultBasemaps returns the street, light and satellite layers offered when
// none are configured.
func DefaultBasemaps() []Basemap {
	return []Basemap{
		{
			Name:        "OpenStreetMap",
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; OpenStreetMap contributors",
		},
		{
			Name:        "CartoDB Positron",
			URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
			Attribution: "&copy; OpenStreetMap contributors &copy; CARTO",
		},
		{
			Name:        "Esri World Imagery",
			URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
			Attribution: "Tiles &copy; Esri",
		},
	}
}

// DefaultMapOptions centres at zoom 5 with clustering on.
func DefaultMapOptions() MapOptions {
	return MapOptions{
		ZoomStart:     5,
		Cluster:       true,
		DefaultColors: compare.DefaultColors(),
		Basemaps:      DefaultBasemaps(),
	}
}
