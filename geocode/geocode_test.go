package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func mapsServer(t *testing.T, status string, results []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"status":  status,
			"results": results,
		}))
	}))
}

func TestMapsResolver_Resolve(t *testing.T) {
	srv := mapsServer(t, "OK", []map[string]any{{
		"formatted_address": "Chennai, Tamil Nadu, India",
		"geometry": map[string]any{
			"location": map[string]any{"lat": 13.0827, "lng": 80.2707},
		},
	}})
	defer srv.Close()

	r, err := NewMapsResolver("test-key", 2*time.Second, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := r.Resolve(context.Background(), "Chennai")
	require.NoError(t, err)
	assert.Equal(t, 13.0827, got.Lat)
	assert.Equal(t, 80.2707, got.Lng)
}

func TestMapsResolver_ZeroResults(t *testing.T) {
	srv := mapsServer(t, "ZERO_RESULTS", []map[string]any{})
	defer srv.Close()

	r, err := NewMapsResolver("test-key", 2*time.Second, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "Nowhere Lane, Chennai")
	assert.Error(t, err)
}

func TestMapsResolver_WithoutKey(t *testing.T) {
	r, err := NewMapsResolver("", time.Second)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "Pune")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
