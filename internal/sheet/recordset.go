package sheet

import (
	"github.com/montanaflynn/stats"
	"github.com/rotisserie/eris"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary describes a non-empty RecordSet for reporting.
type Summary struct {
	Sheet     string  `json:"sheet"`
	Count     int     `json:"count"`
	Dropped   int     `json:"dropped"`
	Centroid  LatLng  `json:"centroid"`
	Min       LatLng  `json:"min"`
	Max       LatLng  `json:"max"`
	MedianLat float64 `json:"median_lat"`
	MedianLng float64 `json:"median_lng"`
}

// Len returns the number of records.
func (s RecordSet) Len() int { return len(s.Records) }

// Empty reports whether no row survived normalization.
func (s RecordSet) Empty() bool { return len(s.Records) == 0 }

// Latitudes returns the latitude column in record order.
func (s RecordSet) Latitudes() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Latitude
	}
	return out
}

// Longitudes returns the longitude column in record order.
func (s RecordSet) Longitudes() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Longitude
	}
	return out
}

// Centroid returns the arithmetic mean latitude and longitude.
func (s RecordSet) Centroid() (LatLng, error) {
	if s.Empty() {
		return LatLng{}, ErrNoValidData
	}
	lat, err := stats.Mean(s.Latitudes())
	if err != nil {
		return LatLng{}, eris.Wrap(err, "sheet: mean latitude")
	}
	lng, err := stats.Mean(s.Longitudes())
	if err != nil {
		return LatLng{}, eris.Wrap(err, "sheet: mean longitude")
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

// Bounds returns the south-west and north-east corners of the records.
func (s RecordSet) Bounds() (LatLng, LatLng, error) {
	if s.Empty() {
		return LatLng{}, LatLng{}, ErrNoValidData
	}
	sw := LatLng{Lat: s.Records[0].Latitude, Lng: s.Records[0].Longitude}
	ne := sw
	for _, r := range s.Records[1:] {
		sw.Lat = min(sw.Lat, r.Latitude)
		sw.Lng = min(sw.Lng, r.Longitude)
		ne.Lat = max(ne.Lat, r.Latitude)
		ne.Lng = max(ne.Lng, r.Longitude)
	}
	return sw, ne, nil
}

// Summary computes count, centroid, bounds and medians.
func (s RecordSet) Summary() (Summary, error) {
	centroid, err := s.Centroid()
	if err != nil {
		return Summary{}, err
	}
	sw, ne, err := s.Bounds()
	if err != nil {
		return Summary{}, err
	}
	medLat, err := stats.Median(s.Latitudes())
	if err != nil {
		return Summary{}, eris.Wrap(err, "sheet: median latitude")
	}
	medLng, err := stats.Median(s.Longitudes())
	if err != nil {
		return Summary{}, eris.Wrap(err, "sheet: median longitude")
	}
	return Summary{
		Sheet:     s.Sheet,
		Count:     s.Len(),
		Dropped:   s.Dropped,
		Centroid:  centroid,
		Min:       sw,
		Max:       ne,
		MedianLat: medLat,
		MedianLng: medLng,
	}, nil
}
