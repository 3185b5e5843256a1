package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroid_IsMeanOfRecords(t *testing.T) {
	set := RecordSet{Records: []PointRecord{
		{Term: "a", Latitude: 59.0, Longitude: 10.0},
		{Term: "b", Latitude: 61.0, Longitude: 6.0},
		{Term: "c", Latitude: 63.5, Longitude: 11.0},
	}}

	c, err := set.Centroid()
	require.NoError(t, err)
	assert.InDelta(t, (59.0+61.0+63.5)/3, c.Lat, 1e-9)
	assert.InDelta(t, (10.0+6.0+11.0)/3, c.Lng, 1e-9)
}

func TestCentroid_SingleRecord(t *testing.T) {
	set := RecordSet{Records: []PointRecord{{Latitude: -33.9, Longitude: 18.4}}}

	c, err := set.Centroid()
	require.NoError(t, err)
	assert.Equal(t, LatLng{Lat: -33.9, Lng: 18.4}, c)
}

func TestCentroid_Empty(t *testing.T) {
	_, err := RecordSet{}.Centroid()
	assert.ErrorIs(t, err, ErrNoValidData)
}

func TestBounds(t *testing.T) {
	set := RecordSet{Records: []PointRecord{
		{Latitude: 60, Longitude: 5},
		{Latitude: 58, Longitude: 11},
		{Latitude: 70, Longitude: 25},
	}}

	sw, ne, err := set.Bounds()
	require.NoError(t, err)
	assert.Equal(t, LatLng{Lat: 58, Lng: 5}, sw)
	assert.Equal(t, LatLng{Lat: 70, Lng: 25}, ne)

	_, _, err = RecordSet{}.Bounds()
	assert.ErrorIs(t, err, ErrNoValidData)
}

func TestSummary(t *testing.T) {
	set := RecordSet{
		Sheet:   "Bok 1",
		Dropped: 2,
		Records: []PointRecord{
			{Latitude: 1, Longitude: 10},
			{Latitude: 2, Longitude: 30},
			{Latitude: 9, Longitude: 20},
		},
	}

	s, err := set.Summary()
	require.NoError(t, err)
	assert.Equal(t, "Bok 1", s.Sheet)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Dropped)
	assert.InDelta(t, 4.0, s.Centroid.Lat, 1e-9)
	assert.InDelta(t, 20.0, s.Centroid.Lng, 1e-9)
	assert.InDelta(t, 2.0, s.MedianLat, 1e-9)
	assert.InDelta(t, 20.0, s.MedianLng, 1e-9)
	assert.Equal(t, LatLng{Lat: 1, Lng: 10}, s.Min)
	assert.Equal(t, LatLng{Lat: 9, Lng: 30}, s.Max)

	// Medians must not reorder the records.
	assert.Equal(t, 10.0, set.Records[0].Longitude)

	_, err = RecordSet{}.Summary()
	assert.ErrorIs(t, err, ErrNoValidData)
}
