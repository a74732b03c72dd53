package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"unicode/utf8"

	"citybrain/llm"
	"citybrain/types"
)

// maxReportChars bounds the report excerpt sent to the model.
const maxReportChars = 2000

// Inferrer finds named locations in free-text citizen reports.
type Inferrer interface {
	InferLocations(ctx context.Context, city, reportsExcerpt string) ([]llm.InferredLocation, error)
}

// Enricher turns reports and government data into unresolved markers.
type Enricher struct {
	inferrer Inferrer
	onInfer  func(err error)
}

// NewEnricher builds an Enricher. onInfer, if set, is told the outcome of
// every inference call.
func NewEnricher(inferrer Inferrer, onInfer func(err error)) *Enricher {
	return &Enricher{inferrer: inferrer, onInfer: onInfer}
}

// Enrich builds the marker list: located reports, then AI-inferred places
// not already covered, then one marker per usable government feed.
func (e *Enricher) Enrich(ctx context.Context, city string, reports []types.CitizenReport, gov types.GovData) []types.Marker {
	var markers []types.Marker
	seen := make(map[string]bool)

	for _, r := range reports {
		if !r.HasCoords {
			continue
		}
		markers = append(markers, types.Marker{
			LocationName: r.LocationName,
			Category:     r.Category,
			Sentiment:    types.Negative,
			Description:  r.Description,
			Lat:          r.Lat,
			Lng:          r.Lng,
			Located:      true,
			IsRealReport: true,
		})
		seen[r.LocationName] = true
	}

	for _, item := range e.infer(ctx, city, reports) {
		if seen[item.LocationName] {
			continue
		}
		category := item.Category
		if category == "" {
			category = "general"
		}
		markers = append(markers, types.Marker{
			LocationName: item.LocationName,
			Category:     category,
			Sentiment:    types.ParseSentiment(item.Sentiment),
			Description:  item.Description,
		})
		seen[item.LocationName] = true
	}

	return append(markers, GovMarkers(city, gov)...)
}

func (e *Enricher) infer(ctx context.Context, city string, reports []types.CitizenReport) []llm.InferredLocation {
	if len(reports) == 0 || e.inferrer == nil {
		return nil
	}

	items, err := e.inferrer.InferLocations(ctx, city, reportExcerpt(reports))
	if e.onInfer != nil {
		e.onInfer(err)
	}
	if err != nil {
		log.Printf("[AI] location inference failed, continuing without it: %v", err)
		return nil
	}
	log.Printf("[AI] inferred %d locations for %s", len(items), city)
	return items
}

type excerptItem struct {
	LocationName string `json:"location_name"`
	Street       string `json:"street,omitempty"`
	Category     string `json:"category"`
	Description  string `json:"description"`
}

// reportExcerpt renders the textual part of the reports, cut to maxReportChars.
func reportExcerpt(reports []types.CitizenReport) string {
	items := make([]excerptItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, excerptItem{
			LocationName: r.LocationName,
			Street:       r.Street,
			Category:     r.Category,
			Description:  r.Description,
		})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return truncate(string(raw), maxReportChars)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// GovMarkers renders one marker per government feed that has usable data.
// Power has no map representation.
func GovMarkers(city string, gov types.GovData) []types.Marker {
	var markers []types.Marker

	if gov.Air.Usable() {
		if value, ok := gov.Air.Field("value"); ok {
			markers = append(markers, airMarker(city, gov.Air, value))
		}
	}

	if gov.Rain.Usable() {
		actual, ok := gov.Rain.Field("actual_rainfall")
		if !ok {
			actual = "0"
		}
		normal, ok := gov.Rain.Field("normal_rainfall")
		if !ok {
			normal = "?"
		}
		markers = append(markers, types.Marker{
			LocationName: city + " Center",
			Category:     "rain",
			Sentiment:    types.Neutral,
			Description:  fmt.Sprintf("Rainfall: %smm (Normal: %smm)", actual, normal),
			IsGovData:    true,
		})
	}

	if gov.Water.Usable() {
		if level, ok := gov.Water.Field("level"); ok {
			source, ok := gov.Water.Field("source")
			if !ok {
				source = "Govt Sensor"
			}
			markers = append(markers, types.Marker{
				LocationName: city + " Groundwater Station",
				Category:     "water",
				Sentiment:    types.Neutral,
				Description:  fmt.Sprintf("Ground Water Level: %sm. Source: %s", level, source),
				IsGovData:    true,
			})
		}
	}

	if gov.Soil.Usable() {
		if ph, ok := gov.Soil.Field("ph_level"); ok {
			nitrogen, ok := gov.Soil.Field("nitrogen")
			if !ok {
				nitrogen = "?"
			}
			markers = append(markers, types.Marker{
				LocationName: city + " Agri-Zone",
				Category:     "ecology",
				Sentiment:    types.Positive,
				Description:  fmt.Sprintf("Soil Health: pH %s, Nitrogen: %s", ph, nitrogen),
				IsGovData:    true,
			})
		}
	}

	return markers
}

func airMarker(city string, air types.GovFeedSummary, value string) types.Marker {
	label := city + " Air Quality Station"
	if station, ok := air.Field("station"); ok {
		label = fmt.Sprintf("%s, %s", station, city)
	}

	m := types.Marker{
		LocationName: label,
		Category:     "air",
		IsGovData:    true,
	}

	aqi, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(aqi) || math.IsInf(aqi, 0) {
		m.Sentiment = types.Neutral
		m.Description = "AQI Data: " + value
		return m
	}

	m.Sentiment = types.Negative
	if aqi <= 100 {
		m.Sentiment = types.Positive
	}
	pollutant, ok := air.Field("pollutant")
	if !ok {
		pollutant = "unknown pollutant"
	}
	m.Description = fmt.Sprintf("AQI is %s (%s). Status: %s", value, pollutant, air.Status)
	return m
}
