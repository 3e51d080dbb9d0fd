package geo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// EarthRadiusKm is the mean earth radius used by all distance calculations.
const EarthRadiusKm = 6371.0

// Office is a predefined attendance location.
type Office struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Match is the office nearest to a fix together with its distance.
type Match struct {
	Office     Office  `json:"office"`
	DistanceKm float64 `json:"distanceKm"`
}

// DefaultOffices is used when no office file is configured.
//
// The source data listed Chennai at longitude -80.2707, which puts it in the
// Atlantic. The table below carries the eastern longitude so that a fix taken
// at the Chennai office resolves to it.
var DefaultOffices = []Office{
	{Name: "Chennai - Office Building A", Latitude: 13.0827, Longitude: 80.2707},
	{Name: "Bengaluru - Tech Park", Latitude: 12.9716, Longitude: 77.5946},
	{Name: "Hyderabad - HITEC City", Latitude: 17.4435, Longitude: 78.3772},
	{Name: "Mumbai - BKC Tower", Latitude: 19.0660, Longitude: 72.8651},
}

// HaversineKm returns the great-circle distance between two coordinates in kilometres.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// HaversineMeters is HaversineKm scaled to metres.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineKm(lat1, lon1, lat2, lon2) * 1000
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// FindClosestOffice returns the nearest office within radiusKm of the fix, or
// nil when every office is farther away or the fix is not a valid
// coordinate. Ties keep the earlier office.
func FindClosestOffice(offices []Office, lat, lon, radiusKm float64) *Match {
	if !ValidCoordinate(lat, lon) {
		return nil
	}
	var best *Match
	for _, office := range offices {
		d := HaversineKm(lat, lon, office.Latitude, office.Longitude)
		// Negated so a NaN distance or radius never matches.
		if !(d <= radiusKm) {
			continue
		}
		if best == nil || d < best.DistanceKm {
			best = &Match{Office: office, DistanceKm: d}
		}
	}
	return best
}

// ValidCoordinate reports whether lat/lon are finite and inside the WGS84 ranges.
func ValidCoordinate(lat, lon float64) bool {
	return ValidLatitude(lat) && ValidLongitude(lon)
}

func ValidLatitude(lat float64) bool {
	return finite(lat) && lat >= -90 && lat <= 90
}

func ValidLongitude(lon float64) bool {
	return finite(lon) && lon >= -180 && lon <= 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// LoadOffices reads a JSON array of offices. An empty path yields DefaultOffices.
func LoadOffices(path string) ([]Office, error) {
	if path == "" {
		return DefaultOffices, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read offices file: %w", err)
	}

	var offices []Office
	if err := json.Unmarshal(data, &offices); err != nil {
		return nil, fmt.Errorf("failed to decode offices file: %w", err)
	}
	if len(offices) == 0 {
		return nil, fmt.Errorf("offices file %s is empty", path)
	}
	for i, o := range offices {
		if o.Name == "" {
			return nil, fmt.Errorf("office #%d has no name", i)
		}
		if !ValidCoordinate(o.Latitude, o.Longitude) {
			return nil, fmt.Errorf("office %q has invalid coordinates", o.Name)
		}
	}
	return offices, nil
}
