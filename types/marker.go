package types

import (
	"strings"
	"time"
)

type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// ParseSentiment maps free text onto one of the three tags, defaulting to neutral.
func ParseSentiment(s string) Sentiment {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Sentiment(s) {
	case Positive, Negative, Neutral:
		return Sentiment(s)
	}
	return Neutral
}

// Marker is the unit rendered on the dashboard map.
type Marker struct {
	LocationName  string    `json:"location_name"`
	Category      string    `json:"category"`
	Sentiment     Sentiment `json:"sentiment"`
	Description   string    `json:"description"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Located       bool      `json:"-"`
	IsRealReport  bool      `json:"is_real_report"`
	IsGovData     bool      `json:"is_gov_data"`
	IsApproximate bool      `json:"is_approximate"`
}

// CityResultBundle is what the cache keeps per city.
type CityResultBundle struct {
	AnalysisID   string
	AnalyzedAt   time.Time
	GovData      GovData
	CitizenStats CitizenStats
	Markers      []Marker
}
