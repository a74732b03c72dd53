package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port      string
	ClientURL string

	GovDataAPIKey  string
	GovDataBaseURL string
	GovDataTimeout time.Duration

	OpenAIKey   string
	OpenAIModel string

	MapsKey            string
	GeocodeTimeout     time.Duration
	GeocodeMinInterval time.Duration

	FirebaseCredentials     string // base64 service account JSON
	FirebaseCredentialsFile string

	RefreshCities   []string
	RefreshSchedule string
}

// Load reads .env (if any) and the environment, applying defaults where unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:                    envOrDefault("PORT", "8080"),
		ClientURL:               envOrDefault("CLIENT_URL", "*"),
		GovDataAPIKey:           os.Getenv("GOVT_DATA_API"),
		GovDataBaseURL:          envOrDefault("GOVT_DATA_BASE_URL", "https://api.data.gov.in/resource"),
		OpenAIKey:               os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:             envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		MapsKey:                 os.Getenv("MAPS_CREDENTIALS"),
		FirebaseCredentials:     os.Getenv("FIREBASE_CREDENTIALS"),
		FirebaseCredentialsFile: envOrDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		RefreshCities:           parseList(os.Getenv("REFRESH_CITIES")),
		RefreshSchedule:         envOrDefault("REFRESH_SCHEDULE", "*/30 * * * *"),
	}

	var err error
	if cfg.GovDataTimeout, err = parseDuration("GOVT_DATA_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = parseDuration("GEOCODE_TIMEOUT", "2s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeMinInterval, err = parseDuration("GEOCODE_MIN_INTERVAL", "500ms"); err != nil {
		return nil, err
	}

	if len(cfg.RefreshCities) > 0 {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", cfg.RefreshSchedule, err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return d, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
