package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Optional external region catalog; the embedded one is used when empty.
	RegionCatalogPath string

	// Upstream hazard-analysis service configuration.
	HazardAPIURL            string
	HazardAPIToken          string
	HazardAPIEnabled        bool
	HazardAPITimeout        time.Duration
	HazardCacheSize         int
	HazardLookupConcurrency int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	hazardTimeoutStr := sharedcfg.EnvOrDefault("HAZARD_API_TIMEOUT", "5s")
	hazardTimeout, err2 := time.ParseDuration(hazardTimeoutStr)
	if err2 != nil || hazardTimeout <= 0 {
		return nil, errors.New("invalid HAZARD_API_TIMEOUT")
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	concurrency, err := parseLookupConcurrency()
	if err != nil {
		return nil, err
	}

	hazardURL := os.Getenv("HAZARD_API_URL")
	hazardEnabled := hazardURL != ""
	if v := os.Getenv("HAZARD_API_ENABLED"); v != "" {
		hazardEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "parcel-risk-requests"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "parcel-risk-assessments"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "parcel-risk-scorer"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		RegionCatalogPath: os.Getenv("REGION_CATALOG_PATH"),

		HazardAPIURL:            hazardURL,
		HazardAPIToken:          os.Getenv("HAZARD_API_TOKEN"),
		HazardAPIEnabled:        hazardEnabled,
		HazardAPITimeout:        hazardTimeout,
		HazardCacheSize:         parseHazardCacheSize(),
		HazardLookupConcurrency: concurrency,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.HazardAPIEnabled && cfg.HazardAPIURL == "" {
		return nil, errors.New("HAZARD_API_ENABLED is true but HAZARD_API_URL is not set")
	}

	return cfg, nil
}

func parseHazardCacheSize() int {
	if s := os.Getenv("HAZARD_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

// parseLookupConcurrency bounds the parallel upstream lookups per parcel.
func parseLookupConcurrency() (int, error) {
	s := os.Getenv("HAZARD_LOOKUP_CONCURRENCY")
	if s == "" {
		return 4, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 8 {
		return 0, errors.New("invalid HAZARD_LOOKUP_CONCURRENCY: must be between 1 and 8")
	}
	return n, nil
}
