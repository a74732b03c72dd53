package types

import "encoding/json"

type FeedKind string

const (
	FeedAir   FeedKind = "air"
	FeedRain  FeedKind = "rain"
	FeedPower FeedKind = "power"
	FeedWater FeedKind = "water"
	FeedSoil  FeedKind = "soil"
)

type FeedStatus string

const (
	FeedActive      FeedStatus = "active"
	FeedNoData      FeedStatus = "no-data"
	FeedUnavailable FeedStatus = "unavailable"
)

// GovFeedSummary is the normalized form of one government feed record.
type GovFeedSummary struct {
	Kind   FeedKind          `json:"-"`
	Status FeedStatus        `json:"status"`
	Fields map[string]string `json:"-"`
}

// Usable reports whether the summary carries data that may become a marker.
func (s GovFeedSummary) Usable() bool {
	return s.Status == FeedActive
}

// Field returns a field value, treating "N/A" as absent.
func (s GovFeedSummary) Field(name string) (string, bool) {
	v, ok := s.Fields[name]
	if !ok || v == "" || v == "N/A" {
		return "", false
	}
	return v, true
}

// MarshalJSON flattens the fields next to the status tag.
func (s GovFeedSummary) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(s.Fields)+1)
	for k, v := range s.Fields {
		out[k] = v
	}
	out["status"] = string(s.Status)
	return json.Marshal(out)
}

func NewFeedSummary(kind FeedKind, status FeedStatus, fields map[string]string) GovFeedSummary {
	if fields == nil {
		fields = map[string]string{}
	}
	return GovFeedSummary{Kind: kind, Status: status, Fields: fields}
}

// GovData holds one summary per feed kind. None of them is ever missing.
type GovData struct {
	Air   GovFeedSummary `json:"air"`
	Rain  GovFeedSummary `json:"rainfall"`
	Power GovFeedSummary `json:"power"`
	Water GovFeedSummary `json:"water_level"`
	Soil  GovFeedSummary `json:"soil"`
}

// UnavailableGovData is what a collection without a provider key returns.
func UnavailableGovData() GovData {
	return GovData{
		Air:   NewFeedSummary(FeedAir, FeedUnavailable, nil),
		Rain:  NewFeedSummary(FeedRain, FeedUnavailable, nil),
		Power: NewFeedSummary(FeedPower, FeedUnavailable, nil),
		Water: NewFeedSummary(FeedWater, FeedUnavailable, nil),
		Soil:  NewFeedSummary(FeedSoil, FeedUnavailable, nil),
	}
}

// Feeds lists the summaries in a stable order.
func (g GovData) Feeds() []GovFeedSummary {
	return []GovFeedSummary{g.Air, g.Rain, g.Power, g.Water, g.Soil}
}
