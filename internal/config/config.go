package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	OpenWeatherAPIKey string
	HTTPAddr          string
	LogLevel          string
	LogFormat         string
	LogFile           string
	ShutdownTimeout   time.Duration

	FetchInterval  time.Duration
	RequestTimeout time.Duration

	// Geographic scope for the seismic and landslide queries.
	BoundingBox domain.BoundingBox

	SeismicMinMagnitude float64
	SeismicLookback     time.Duration

	// Outbound weather API budget, requests per minute.
	WeatherRateLimit int

	// Optional YAML file overriding the embedded location tables.
	LocationsFile string

	SevereStormsEnabled bool

	// Optional Kafka alert feed.
	KafkaBrokers     []string
	KafkaAlertsTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A missing OPENWEATHER_API_KEY is a hard error: silently
// emitting empty weather data would be an availability bug, not a transient
// fault.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	fetchInterval, err := durationEnv("FETCH_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := durationEnv("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	lookback, err := durationEnv("SEISMIC_LOOKBACK", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	bbox, err := loadBoundingBox()
	if err != nil {
		return nil, err
	}

	minMag, err := floatEnv("SEISMIC_MIN_MAGNITUDE", 4.0)
	if err != nil {
		return nil, err
	}

	rateLimit, err := intEnv("WEATHER_RATE_LIMIT", 60)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "json"),
		LogFile:           os.Getenv("LOG_FILE"),
		ShutdownTimeout:   shutdownTimeout,

		FetchInterval:  fetchInterval,
		RequestTimeout: requestTimeout,

		BoundingBox: bbox,

		SeismicMinMagnitude: minMag,
		SeismicLookback:     lookback,

		WeatherRateLimit: rateLimit,

		LocationsFile: os.Getenv("LOCATIONS_FILE"),

		SevereStormsEnabled: envOrDefault("SEVERE_STORMS_ENABLED", "true") == "true",

		KafkaBrokers:     brokers,
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "disaster-alerts"),
		KafkaEnabled:     kafkaEnabled,
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.FetchInterval <= 0 {
		return nil, errors.New("FETCH_INTERVAL must be positive")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

// loadBoundingBox reads the monitored area, defaulting to India.
func loadBoundingBox() (domain.BoundingBox, error) {
	minLat, err := floatEnv("BBOX_MIN_LAT", 6)
	if err != nil {
		return domain.BoundingBox{}, err
	}
	maxLat, err := floatEnv("BBOX_MAX_LAT", 37)
	if err != nil {
		return domain.BoundingBox{}, err
	}
	minLon, err := floatEnv("BBOX_MIN_LON", 68)
	if err != nil {
		return domain.BoundingBox{}, err
	}
	maxLon, err := floatEnv("BBOX_MAX_LON", 98)
	if err != nil {
		return domain.BoundingBox{}, err
	}

	bbox := domain.BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	if bbox.MinLat >= bbox.MaxLat || bbox.MinLon >= bbox.MaxLon {
		return domain.BoundingBox{}, errors.New("bounding box min must be below max")
	}
	return bbox, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
