package cronjobs

import (
	"context"
	"fmt"
	"log"

	"citybrain/pipeline"

	"github.com/robfig/cron/v3"
)

type Analyzer interface {
	Analyze(ctx context.Context, city string) pipeline.Result
}

// InitCronJobs schedules a periodic re-analysis of the watch cities so chat
// has warm data for them. It returns nil when there is nothing to watch.
func InitCronJobs(cities []string, schedule string, analyzer Analyzer) (*cron.Cron, error) {
	if len(cities) == 0 {
		return nil, nil
	}
	log.Printf("Starting Cron Jobs: refreshing %v on %q", cities, schedule)
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		refreshCities(context.Background(), cities, analyzer)
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling city refresh: %w", err)
	}

	c.Start()
	return c, nil
}

func refreshCities(ctx context.Context, cities []string, analyzer Analyzer) {
	for _, city := range cities {
		if ctx.Err() != nil {
			return
		}
		log.Printf("CronJob: refreshing %s", city)
		res := analyzer.Analyze(ctx, city)
		log.Printf("CronJob: %s refreshed (%s, %d markers)", city, res.Bundle.AnalysisID, len(res.Bundle.Markers))
	}
}
