package utils

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                 int           `validate:"gt=0,lte=65535"`
	ErailBaseURL         string        `validate:"required,url"`
	PnrBaseURL           string        `validate:"required,url"`
	UpstreamTimeout      time.Duration `validate:"gt=0"`
	CacheTTL             time.Duration `validate:"gte=0"`
	RunningDaysAnchor    time.Weekday  `validate:"gte=0,lte=6"`
	EventsBroker         string        `validate:"omitempty,oneof=amqp stomp"`
	RouteRefreshInterval time.Duration `validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		Port:                 3000,
		ErailBaseURL:         "https://erail.in",
		PnrBaseURL:           "https://www.confirmtkt.com",
		UpstreamTimeout:      15 * time.Second,
		CacheTTL:             10 * time.Minute,
		RunningDaysAnchor:    time.Monday,
		RouteRefreshInterval: time.Hour,
	}
}

// LoadConfig reads .env files when present, then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := DefaultConfig()
	var err error

	if cfg.Port, err = getIntEnv("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	cfg.ErailBaseURL = getEnv("ERAIL_BASE_URL", cfg.ErailBaseURL)
	cfg.PnrBaseURL = getEnv("PNR_BASE_URL", cfg.PnrBaseURL)
	if cfg.UpstreamTimeout, err = getSecondsEnv("UPSTREAM_TIMEOUT_SECONDS", cfg.UpstreamTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getSecondsEnv("CACHE_TTL_SECONDS", cfg.CacheTTL); err != nil {
		return Config{}, err
	}
	if anchor := getEnv("RUNNING_DAYS_ANCHOR", ""); anchor != "" {
		if cfg.RunningDaysAnchor, err = ParseWeekday(anchor); err != nil {
			return Config{}, fmt.Errorf("RUNNING_DAYS_ANCHOR: %w", err)
		}
	}
	cfg.EventsBroker = getEnv("EVENTS_BROKER", "")
	if cfg.RouteRefreshInterval, err = getSecondsEnv("ROUTE_REFRESH_INTERVAL_SECONDS", cfg.RouteRefreshInterval); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
