package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"citybrain/analyst"
	"citybrain/cache"
	"citybrain/cartographer"
	"citybrain/chat"
	"citybrain/config"
	"citybrain/cronjobs"
	"citybrain/db"
	"citybrain/geocode"
	"citybrain/govdata"
	"citybrain/llm"
	"citybrain/metrics"
	"citybrain/pipeline"
	"citybrain/routes"
	"citybrain/types"

	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("CLIENT_URL:", cfg.ClientURL)

	m := metrics.NewMetrics()
	store := cache.New()
	clock := clockwork.NewRealClock()

	// Firestore is optional: without it the service runs on government data only.
	firestoreClient, err := db.InitFirestore(context.Background(), cfg.FirebaseCredentials, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Printf("[DB] Firestore unavailable, citizen reports disabled: %v", err)
	}
	defer db.CloseFirestore()
	reports := db.NewReportCollector(db.FirestoreIssues{Client: firestoreClient})

	if cfg.GovDataAPIKey == "" {
		log.Println("[GOV] GOVT_DATA_API missing, government feeds are disabled")
	}
	gov := govdata.NewCollector(
		govdata.NewClient(cfg.GovDataAPIKey, cfg.GovDataBaseURL, cfg.GovDataTimeout),
		govdata.DefaultResources,
		func(kind types.FeedKind, status types.FeedStatus) {
			m.FeedOutcomes.WithLabelValues(string(kind), string(status)).Inc()
		},
	)

	resolver, err := geocode.NewMapsResolver(cfg.MapsKey, cfg.GeocodeTimeout)
	if err != nil {
		log.Fatalf("Failed to create geocoder: %v", err)
	}
	throttle := geocode.NewThrottle(cfg.GeocodeMinInterval, clock)
	carto := cartographer.New(
		resolver,
		throttle,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		func(o cartographer.Outcome) {
			m.GeocodeOutcomes.WithLabelValues(string(o)).Inc()
		},
	)

	ai := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	enricher := analyst.NewEnricher(ai, func(err error) {
		m.LLMCalls.WithLabelValues("infer", metrics.Outcome(err)).Inc()
	})

	orchestrator := pipeline.New(pipeline.Deps{
		Geo:      resolver,
		Throttle: throttle,
		Gov:      gov,
		Reports:  reports,
		Enricher: enricher,
		Carto:    carto,
		Cache:    store,
		Clock:    clock,
		Metrics:  m,
	})
	responder := chat.NewResponder(store, ai, m)

	c, err := cronjobs.InitCronJobs(cfg.RefreshCities, cfg.RefreshSchedule, orchestrator)
	if err != nil {
		log.Fatalf("Failed to start cron jobs: %v", err)
	}
	if c != nil {
		defer c.Stop()
	}

	r := routes.SetupRouter(orchestrator, responder, cfg.ClientURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
