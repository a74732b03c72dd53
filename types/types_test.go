package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, CityKey("pune"), NormalizeCity("PUNE "))
	assert.Equal(t, CityKey("pune"), NormalizeCity("  Pune\t"))
	assert.Equal(t, CityKey("new delhi"), NormalizeCity("New Delhi"))
	assert.NotEqual(t, NormalizeCity("Pune"), NormalizeCity("Mumbai"))
}

func TestGovFeedSummary_MarshalJSONFlattensFields(t *testing.T) {
	s := NewFeedSummary(FeedAir, FeedActive, map[string]string{"value": "150", "station": "Adarsh Nagar"})

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]string{"status": "active", "value": "150", "station": "Adarsh Nagar"}, got)
}

func TestGovFeedSummary_FieldTreatsNAAsAbsent(t *testing.T) {
	s := NewFeedSummary(FeedWater, FeedActive, map[string]string{"level": "N/A", "source": "CGWB"})

	_, ok := s.Field("level")
	assert.False(t, ok)
	v, ok := s.Field("source")
	assert.True(t, ok)
	assert.Equal(t, "CGWB", v)
}

func TestUnavailableGovData(t *testing.T) {
	for _, f := range UnavailableGovData().Feeds() {
		assert.Equal(t, FeedUnavailable, f.Status, f.Kind)
		assert.False(t, f.Usable())
	}
}

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, Negative, ParseSentiment("Negative"))
	assert.Equal(t, Positive, ParseSentiment(" positive "))
	assert.Equal(t, Neutral, ParseSentiment("mixed"))
	assert.Equal(t, Neutral, ParseSentiment(""))
}

func TestStatsFromReports(t *testing.T) {
	stats := StatsFromReports([]CitizenReport{
		{Category: "pothole"}, {Category: "garbage"}, {Category: "pothole"},
	})
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, map[string]int{"pothole": 2, "garbage": 1}, stats.CategoryBreakdown)

	empty := StatsFromReports(nil)
	assert.Equal(t, 0, empty.TotalReports)
	assert.NotNil(t, empty.CategoryBreakdown)
}
