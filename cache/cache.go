package cache

import (
	"sync"

	"citybrain/types"
)

// Store keeps the last analysis result per city for the lifetime of the
// process. It is unbounded and never evicts.
//
// Bundles are replaced wholesale on Put and never modified in place, so a
// reader always sees either the previous bundle or the new one.
type Store struct {
	mu      sync.RWMutex
	entries map[types.CityKey]types.CityResultBundle
}

func New() *Store {
	return &Store{entries: make(map[types.CityKey]types.CityResultBundle)}
}

// Put replaces the bundle for key.
func (s *Store) Put(key types.CityKey, bundle types.CityResultBundle) {
	bundle = clone(bundle)
	s.mu.Lock()
	s.entries[key] = bundle
	s.mu.Unlock()
}

// Get returns the bundle for key, if one was stored.
func (s *Store) Get(key types.CityKey) (types.CityResultBundle, bool) {
	s.mu.RLock()
	b, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return types.CityResultBundle{}, false
	}
	return clone(b), true
}

// Len reports how many cities are cached.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// clone copies the slices and maps of a bundle so neither the writer nor a
// reader can mutate the stored copy afterwards.
func clone(b types.CityResultBundle) types.CityResultBundle {
	b.Markers = append([]types.Marker(nil), b.Markers...)

	breakdown := make(map[string]int, len(b.CitizenStats.CategoryBreakdown))
	for k, v := range b.CitizenStats.CategoryBreakdown {
		breakdown[k] = v
	}
	b.CitizenStats.CategoryBreakdown = breakdown

	b.GovData = types.GovData{
		Air:   cloneFeed(b.GovData.Air),
		Rain:  cloneFeed(b.GovData.Rain),
		Power: cloneFeed(b.GovData.Power),
		Water: cloneFeed(b.GovData.Water),
		Soil:  cloneFeed(b.GovData.Soil),
	}
	return b
}

func cloneFeed(s types.GovFeedSummary) types.GovFeedSummary {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	s.Fields = fields
	return s
}
