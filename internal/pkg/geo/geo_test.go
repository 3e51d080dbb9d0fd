package geo

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	// Chennai to Bengaluru is roughly 290 km.
	d := HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, 290, d, 5)

	assert.Equal(t, 0.0, HaversineKm(10, 10, 10, 10))
	assert.InDelta(t, d*1000, HaversineMeters(13.0827, 80.2707, 12.9716, 77.5946), 1e-6)
}

func TestFindClosestOffice_Chennai(t *testing.T) {
	m := FindClosestOffice(DefaultOffices, 13.0827, 80.2707, 5)
	require.NotNil(t, m)
	assert.Equal(t, "Chennai - Office Building A", m.Office.Name)
	assert.InDelta(t, 0, m.DistanceKm, 1e-9)
}

func TestFindClosestOffice_NoneWithinRadius(t *testing.T) {
	// Delhi is far from every default office.
	assert.Nil(t, FindClosestOffice(DefaultOffices, 28.6139, 77.2090, 5))
	assert.Nil(t, FindClosestOffice(nil, 13.0827, 80.2707, 5))
}

func TestFindClosestOffice_PicksNearest(t *testing.T) {
	offices := []Office{
		{Name: "far", Latitude: 13.10, Longitude: 80.27},
		{Name: "near", Latitude: 13.085, Longitude: 80.27},
	}
	m := FindClosestOffice(offices, 13.0827, 80.2707, 5)
	require.NotNil(t, m)
	assert.Equal(t, "near", m.Office.Name)
}

func TestFindClosestOffice_SourceChennaiLongitudeNeverMatches(t *testing.T) {
	offices := []Office{{Name: "Chennai - Office Building A", Latitude: 13.0827, Longitude: -80.2707}}
	assert.Nil(t, FindClosestOffice(offices, 13.0827, 80.2707, 5))
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"origin", 0, 0, true},
		{"bounds", -90, 180, true},
		{"latitude above range", 90.0001, 0, false},
		{"latitude below range", -91, 0, false},
		{"longitude below range", 0, -180.0001, false},
		{"NaN latitude", math.NaN(), 0, false},
		{"NaN longitude", 0, math.NaN(), false},
		{"positive infinity", math.Inf(1), 0, false},
		{"negative infinity", 0, math.Inf(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinate(tt.lat, tt.lon))
		})
	}
}

func TestFindClosestOffice_NonFiniteFix(t *testing.T) {
	fixes := [][2]float64{
		{math.NaN(), math.NaN()},
		{13.0827, math.NaN()},
		{math.Inf(1), 80.2707},
		{13.0827, math.Inf(-1)},
		{90.0001, 80.2707},
	}
	for _, f := range fixes {
		assert.Nil(t, FindClosestOffice(DefaultOffices, f[0], f[1], 5), "fix %v", f)
	}
	assert.Nil(t, FindClosestOffice(DefaultOffices, 13.0827, 80.2707, math.NaN()))
}

func TestLoadOffices(t *testing.T) {
	offices, err := LoadOffices("")
	require.NoError(t, err)
	assert.Len(t, offices, 4)

	dir := t.TempDir()
	path := filepath.Join(dir, "offices.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"HQ","latitude":1.5,"longitude":2.5}]`), 0o644))

	offices, err = LoadOffices(path)
	require.NoError(t, err)
	assert.Equal(t, []Office{{Name: "HQ", Latitude: 1.5, Longitude: 2.5}}, offices)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"name":"X","latitude":100,"longitude":0}]`), 0o644))
	_, err = LoadOffices(bad)
	assert.Error(t, err)
}
