package govdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/res-air", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api-key"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "Jaipur", q.Get("filters[city]"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"station": "Adarsh Nagar", "pollutant_avg": "150"}},
		}))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 5*time.Second)
	records, err := c.FetchResource(context.Background(), "res-air", map[string]string{"city": "Jaipur"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Adarsh Nagar", records[0]["station"])
}

func TestClient_FetchResource_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"key not authorised"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", srv.URL, 5*time.Second)
	_, err := c.FetchResource(context.Background(), "res-air", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClient_FetchResource_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, 5*time.Second)
	_, err := c.FetchResource(context.Background(), "res-air", nil)
	require.Error(t, err)
}

func TestClient_FetchResource_NoKeySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient("", srv.URL, 5*time.Second)
	assert.False(t, c.Enabled())
	_, err := c.FetchResource(context.Background(), "res-air", nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.False(t, called)
}
