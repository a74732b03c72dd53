package govdata

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"citybrain/types"
)

// Resources holds the data.gov.in resource ID of each feed.
type Resources struct {
	Air         string
	Rainfall    string
	Power       string
	Groundwater string
	Soil        string
}

var DefaultResources = Resources{
	Air:         "3b01bcb8-0b14-4abf-b6f2-c1bfd384ba69",
	Rainfall:    "6c05cd1b-ed59-40c2-bc31-e314f39c6971",
	Power:       "8c55baee-3e42-457f-92c4-a0005e954bcc",
	Groundwater: "d23c7de6-867b-4679-b8c7-36ee8a95b15b",
	Soil:        "4554a3c8-74e3-4f93-8727-8fd92161e345",
}

// fieldSources maps a canonical field name to the raw keys it may arrive as.
type fieldSources map[string][]string

var (
	airFields = fieldSources{
		"value":       {"pollutant_avg"},
		"pollutant":   {"pollutant_id"},
		"station":     {"station"},
		"last_update": {"last_update"},
	}
	rainFields = fieldSources{
		"actual_rainfall": {"actual_rainfall", "actual"},
		"normal_rainfall": {"normal_rainfall", "normal"},
		"district":        {"district"},
	}
	waterFields = fieldSources{
		"level":  {"level", "water_level", "gw_level"},
		"source": {"source", "agency"},
	}
	soilFields = fieldSources{
		"ph_level": {"ph_level", "ph"},
		"nitrogen": {"n", "nitrogen"},
	}
)

// Fetcher is the subset of Client the collector needs.
type Fetcher interface {
	Enabled() bool
	FetchResource(ctx context.Context, resourceID string, filters map[string]string) ([]Record, error)
}

// FeedObserver is told the outcome of every feed. May be nil.
type FeedObserver func(kind types.FeedKind, status types.FeedStatus)

// Collector gathers and normalizes every government feed for a city.
type Collector struct {
	fetcher   Fetcher
	resources Resources
	observe   FeedObserver
}

func NewCollector(fetcher Fetcher, resources Resources, observe FeedObserver) *Collector {
	return &Collector{fetcher: fetcher, resources: resources, observe: observe}
}

// Collect queries every feed. A failing feed degrades on its own and never
// fails the others.
func (c *Collector) Collect(ctx context.Context, city, state, district string) types.GovData {
	if !c.fetcher.Enabled() {
		log.Println("[GOV] GOVT_DATA_API key missing, every feed unavailable")
		data := types.UnavailableGovData()
		for _, f := range data.Feeds() {
			c.report(f)
		}
		return data
	}

	log.Printf("[GOV] collecting feeds for city=%s state=%s district=%s", city, state, district)

	data := types.GovData{
		Air:   c.collectAir(ctx, city),
		Rain:  c.collectFirst(ctx, types.FeedRain, c.resources.Rainfall, map[string]string{"district": district}, rainFields),
		Water: c.collectFirst(ctx, types.FeedWater, c.resources.Groundwater, map[string]string{"district_name": district, "state_name": state}, waterFields),
		Soil:  c.collectFirst(ctx, types.FeedSoil, c.resources.Soil, map[string]string{"district_name": district}, soilFields),
	}
	if state != "" {
		data.Power = c.collectFirst(ctx, types.FeedPower, c.resources.Power, map[string]string{"state_name": state}, nil)
	} else {
		log.Printf("[GOV] no state known for %s, skipping power feed", city)
		data.Power = types.NewFeedSummary(types.FeedPower, types.FeedNoData, nil)
	}

	for _, f := range data.Feeds() {
		c.report(f)
	}
	return data
}

func (c *Collector) collectAir(ctx context.Context, city string) types.GovFeedSummary {
	records, err := c.fetcher.FetchResource(ctx, c.resources.Air, map[string]string{"city": city})
	if err != nil {
		log.Printf("[GOV] air feed failed: %v", err)
		return types.NewFeedSummary(types.FeedAir, types.FeedUnavailable, nil)
	}

	if len(records) == 0 {
		if alias, ok := airAlias(city); ok {
			log.Printf("[GOV] air feed empty for %s, retrying as %s", city, alias)
			records, err = c.fetcher.FetchResource(ctx, c.resources.Air, map[string]string{"city": alias})
			if err != nil {
				log.Printf("[GOV] air feed retry failed: %v", err)
				return types.NewFeedSummary(types.FeedAir, types.FeedUnavailable, nil)
			}
		}
	}

	if len(records) == 0 {
		return types.NewFeedSummary(types.FeedAir, types.FeedNoData, nil)
	}
	return types.NewFeedSummary(types.FeedAir, types.FeedActive, normalize(records[0], airFields))
}

func (c *Collector) collectFirst(ctx context.Context, kind types.FeedKind, resourceID string, filters map[string]string, fields fieldSources) types.GovFeedSummary {
	records, err := c.fetcher.FetchResource(ctx, resourceID, filters)
	if err != nil {
		log.Printf("[GOV] %s feed failed: %v", kind, err)
		return types.NewFeedSummary(kind, types.FeedUnavailable, nil)
	}
	if len(records) == 0 {
		return types.NewFeedSummary(kind, types.FeedNoData, nil)
	}
	return types.NewFeedSummary(kind, types.FeedActive, normalize(records[0], fields))
}

func (c *Collector) report(s types.GovFeedSummary) {
	if c.observe != nil {
		c.observe(s.Kind, s.Status)
	}
}

// normalize projects a raw record onto canonical fields. With no field
// table every scalar field is kept under its lower-cased key.
func normalize(rec Record, fields fieldSources) map[string]string {
	out := make(map[string]string)
	if fields == nil {
		for k, v := range rec {
			if s, ok := scalarString(v); ok {
				out[strings.ToLower(k)] = s
			}
		}
		return out
	}

	for name, keys := range fields {
		for _, k := range keys {
			if s, ok := scalarString(rec[k]); ok && s != "" {
				out[name] = s
				break
			}
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", false
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}
