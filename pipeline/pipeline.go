package pipeline

import (
	"context"
	"log"
	"strings"

	"citybrain/cache"
	"citybrain/geocode"
	"citybrain/govdata"
	"citybrain/metrics"
	"citybrain/types"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type GovCollector interface {
	Collect(ctx context.Context, city, state, district string) types.GovData
}

type ReportCollector interface {
	Collect(ctx context.Context, city string) []types.CitizenReport
}

type Enricher interface {
	Enrich(ctx context.Context, city string, reports []types.CitizenReport, gov types.GovData) []types.Marker
}

type MarkerResolver interface {
	Resolve(ctx context.Context, markers []types.Marker, center types.Coordinates, city string) []types.Marker
}

// Result is one analysis plus the request-scoped extras the HTTP layer needs.
type Result struct {
	Bundle  types.CityResultBundle
	Center  types.Coordinates
	Reports []types.CitizenReport
}

// Orchestrator runs collect -> enrich -> resolve and writes the result
// through to the city cache.
type Orchestrator struct {
	geo      geocode.Resolver
	throttle *geocode.Throttle
	gov      GovCollector
	reports  ReportCollector
	enricher Enricher
	carto    MarkerResolver
	cache    *cache.Store
	clock    clockwork.Clock
	metrics  *metrics.Metrics
}

type Deps struct {
	Geo      geocode.Resolver
	// Throttle is shared with the cartographer so the center lookup and
	// marker lookups are spaced by the same interval.
	Throttle *geocode.Throttle
	Gov      GovCollector
	Reports  ReportCollector
	Enricher Enricher
	Carto    MarkerResolver
	Cache    *cache.Store
	Clock    clockwork.Clock
	Metrics  *metrics.Metrics
}

func New(d Deps) *Orchestrator {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	return &Orchestrator{
		geo:      d.Geo,
		throttle: d.Throttle,
		gov:      d.Gov,
		reports:  d.Reports,
		enricher: d.Enricher,
		carto:    d.Carto,
		cache:    d.Cache,
		clock:    d.Clock,
		metrics:  d.Metrics,
	}
}

// Analyze runs the full pipeline for city. It always returns a best-effort
// result; every stage recovers its own failures. The caller's cancellation
// does not interrupt a run that has started.
func (o *Orchestrator) Analyze(ctx context.Context, city string) Result {
	ctx = context.WithoutCancel(ctx)
	city = strings.TrimSpace(city)
	start := o.clock.Now()
	id := uuid.NewString()
	log.Printf("=== Analyze %s (analysis %s) ===", city, id)

	center := o.cityCenter(ctx, city)
	state := govdata.StateForCity(city)

	gov := o.gov.Collect(ctx, city, state, city)
	reports := o.reports.Collect(ctx, city)
	markers := o.enricher.Enrich(ctx, city, reports, gov)
	markers = o.carto.Resolve(ctx, markers, center, city)
	if markers == nil {
		markers = []types.Marker{}
	}

	bundle := types.CityResultBundle{
		AnalysisID:   id,
		AnalyzedAt:   o.clock.Now(),
		GovData:      gov,
		CitizenStats: types.StatsFromReports(reports),
		Markers:      markers,
	}

	key := types.NormalizeCity(city)
	o.cache.Put(key, bundle)
	log.Printf("Analysis %s for %q cached: %d markers, %d reports", id, key, len(markers), len(reports))

	if o.metrics != nil {
		o.metrics.Analyses.Inc()
		o.metrics.AnalysisDuration.Observe(o.clock.Since(start).Seconds())
		o.metrics.CachedCities.Set(float64(o.cache.Len()))
	}

	return Result{Bundle: bundle, Center: center, Reports: reports}
}

func (o *Orchestrator) cityCenter(ctx context.Context, city string) types.Coordinates {
	if o.geo == nil {
		return types.DefaultCenter
	}
	if err := o.throttle.Wait(ctx); err != nil {
		log.Printf("[GEO] city center for %s unavailable, using default: %v", city, err)
		return types.DefaultCenter
	}
	c, err := o.geo.Resolve(ctx, city)
	if err != nil {
		log.Printf("[GEO] city center for %s unavailable, using default: %v", city, err)
		return types.DefaultCenter
	}
	return c
}
