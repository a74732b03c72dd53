package types

import "strings"

// CityKey is the normalized city name used as cache key and join key.
type CityKey string

// NormalizeCity lower-cases and trims a city name.
func NormalizeCity(city string) CityKey {
	return CityKey(strings.ToLower(strings.TrimSpace(city)))
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pair renders the coordinate as [lat, lng] the way the dashboard expects.
func (c Coordinates) Pair() []float64 {
	return []float64{c.Lat, c.Lng}
}

// DefaultCenter is used when the city itself cannot be geocoded.
var DefaultCenter = Coordinates{Lat: 19.07, Lng: 72.87}
