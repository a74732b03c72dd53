package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"citybrain/types"

	"googlemaps.github.io/maps"
)

var (
	// ErrNoResult is returned when the provider has no match for a query.
	ErrNoResult = errors.New("geocode: no result")
	// ErrNotConfigured is returned by a resolver built without credentials.
	ErrNotConfigured = errors.New("geocode: MAPS_CREDENTIALS not set")
)

// Resolver turns a free-text place description into coordinates.
// One call is one lookup; there are no retries.
type Resolver interface {
	Resolve(ctx context.Context, query string) (types.Coordinates, error)
}

// MapsResolver resolves places through the Google Maps geocoding API.
type MapsResolver struct {
	client  *maps.Client
	timeout time.Duration
}

// NewMapsResolver builds a resolver. An empty key yields a resolver whose
// lookups always fail, so callers fall back to their defaults.
func NewMapsResolver(apiKey string, timeout time.Duration, opts ...maps.ClientOption) (*MapsResolver, error) {
	r := &MapsResolver{timeout: timeout}
	if apiKey == "" {
		log.Println("[GEO] MAPS_CREDENTIALS missing, every lookup will use fallbacks")
		return r, nil
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	r.client = client
	return r, nil
}

// Resolve forward-geocodes query and returns the first result.
func (r *MapsResolver) Resolve(ctx context.Context, query string) (types.Coordinates, error) {
	if r.client == nil {
		return types.Coordinates{}, ErrNotConfigured
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return types.Coordinates{}, ErrNoResult
	}

	loc := results[0].Geometry.Location
	return types.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
