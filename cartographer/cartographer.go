package cartographer

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"citybrain/geocode"
	"citybrain/types"
)

// maxOffset bounds the fallback jitter per axis, roughly 500m.
const maxOffset = 0.005

// Outcome labels how a marker got its coordinates.
type Outcome string

const (
	Passthrough Outcome = "passthrough"
	Geocoded    Outcome = "geocoded"
	Fallback    Outcome = "fallback"
)

// Cartographer attaches coordinates to every marker.
type Cartographer struct {
	resolver geocode.Resolver
	throttle *geocode.Throttle
	observe  func(Outcome)

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Cartographer. rng drives the fallback jitter; pass a seeded
// source for reproducible output. observe may be nil.
func New(resolver geocode.Resolver, throttle *geocode.Throttle, rng *rand.Rand, observe func(Outcome)) *Cartographer {
	return &Cartographer{resolver: resolver, throttle: throttle, rng: rng, observe: observe}
}

// Resolve returns markers with coordinates attached. Markers that fail to
// geocode are placed near center and labeled "(Approx)". No marker is dropped.
func (c *Cartographer) Resolve(ctx context.Context, markers []types.Marker, center types.Coordinates, city string) []types.Marker {
	out := make([]types.Marker, 0, len(markers))
	for _, m := range markers {
		if m.Located {
			c.record(Passthrough)
			out = append(out, m)
			continue
		}

		coords, err := c.lookup(ctx, fmt.Sprintf("%s, %s", m.LocationName, city))
		if err != nil {
			log.Printf("[GEO] could not find %q, using city center: %v", m.LocationName, err)
			coords = c.jitter(center)
			m.LocationName += " (Approx)"
			m.IsApproximate = true
			c.record(Fallback)
		} else {
			c.record(Geocoded)
		}

		m.Lat = coords.Lat
		m.Lng = coords.Lng
		m.Located = true
		out = append(out, m)
	}
	return out
}

func (c *Cartographer) lookup(ctx context.Context, query string) (types.Coordinates, error) {
	if c.resolver == nil {
		return types.Coordinates{}, geocode.ErrNotConfigured
	}
	if err := c.throttle.Wait(ctx); err != nil {
		return types.Coordinates{}, err
	}
	log.Printf("[GEO] looking up %s", query)
	return c.resolver.Resolve(ctx, query)
}

// jitter offsets center independently per axis within ±maxOffset.
func (c *Cartographer) jitter(center types.Coordinates) types.Coordinates {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.Coordinates{
		Lat: center.Lat + (c.rng.Float64()*2-1)*maxOffset,
		Lng: center.Lng + (c.rng.Float64()*2-1)*maxOffset,
	}
}

func (c *Cartographer) record(o Outcome) {
	if c.observe != nil {
		c.observe(o)
	}
}
