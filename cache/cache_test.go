package cache

import (
	"fmt"
	"sync"
	"testing"

	"citybrain/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundle(id string, markers int) types.CityResultBundle {
	b := types.CityResultBundle{
		AnalysisID:   id,
		GovData:      types.UnavailableGovData(),
		CitizenStats: types.CitizenStats{TotalReports: markers, CategoryBreakdown: map[string]int{"pothole": markers}},
	}
	for i := 0; i < markers; i++ {
		b.Markers = append(b.Markers, types.Marker{LocationName: fmt.Sprintf("%s-%d", id, i)})
	}
	return b
}

func TestStore_GetMissing(t *testing.T) {
	s := New()
	_, ok := s.Get(types.NormalizeCity("Pune"))
	assert.False(t, ok)
}

func TestStore_KeyIsCaseAndSpaceInsensitive(t *testing.T) {
	s := New()
	s.Put(types.NormalizeCity("Pune"), bundle("run-1", 2))

	got, ok := s.Get(types.NormalizeCity("PUNE "))
	require.True(t, ok)
	assert.Equal(t, "run-1", got.AnalysisID)
}

func TestStore_Isolation(t *testing.T) {
	s := New()
	s.Put(types.NormalizeCity("Pune"), bundle("pune", 1))
	s.Put(types.NormalizeCity("Mumbai"), bundle("mumbai", 3))

	got, ok := s.Get(types.NormalizeCity("Pune"))
	require.True(t, ok)
	assert.Equal(t, "pune", got.AnalysisID)
	assert.Len(t, got.Markers, 1)
	assert.Equal(t, 2, s.Len())
}

func TestStore_PutOverwritesWholesale(t *testing.T) {
	s := New()
	key := types.NormalizeCity("Pune")
	s.Put(key, bundle("old", 5))
	s.Put(key, bundle("new", 1))

	got, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "new", got.AnalysisID)
	assert.Len(t, got.Markers, 1)
	assert.Equal(t, 1, s.Len())
}

func TestStore_StoredCopyIsIsolatedFromCallers(t *testing.T) {
	s := New()
	key := types.NormalizeCity("Pune")
	b := bundle("run", 1)
	s.Put(key, b)

	b.Markers[0].LocationName = "mutated"
	b.CitizenStats.CategoryBreakdown["pothole"] = 99

	got, _ := s.Get(key)
	assert.Equal(t, "run-0", got.Markers[0].LocationName)
	assert.Equal(t, 1, got.CitizenStats.CategoryBreakdown["pothole"])

	got.GovData.Air.Fields["value"] = "x"
	again, _ := s.Get(key)
	_, present := again.GovData.Air.Fields["value"]
	assert.False(t, present)
}

func TestStore_ConcurrentReadersSeeWholeBundles(t *testing.T) {
	s := New()
	key := types.NormalizeCity("Pune")
	s.Put(key, bundle("a", 2))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if i%2 == 0 {
					s.Put(key, bundle("a", 2))
				} else {
					s.Put(key, bundle("b", 7))
				}
				s.Put(types.NormalizeCity(fmt.Sprintf("city-%d", w)), bundle("other", 1))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				got, ok := s.Get(key)
				if !assert.True(t, ok) {
					return
				}
				switch got.AnalysisID {
				case "a":
					assert.Len(t, got.Markers, 2)
				case "b":
					assert.Len(t, got.Markers, 7)
				default:
					t.Errorf("unexpected bundle %q", got.AnalysisID)
				}
			}
		}()
	}
	wg.Wait()
}
