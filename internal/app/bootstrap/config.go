package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	JWTSecret    string

	MaxDBConns int32

	KafkaTopicPostEvents   string
	KafkaTopicTrustEvents  string
	KafkaTopicReportEvents string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	SyncInterval       time.Duration

	StatusWriteRetries int
	FeedCacheTTL       time.Duration
	FeedPageSize       int

	FeedSources []FeedSource
}

// FeedSource describes one external bulletin the sync engine pulls
// official announcements from.
type FeedSource struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"` // "http" or "websocket"
	URL           string `yaml:"url"`
	Establishment string `yaml:"establishment"`
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL            string   `yaml:"postgres_url"`
		RedisURL               string   `yaml:"redis_url"`
		KafkaBrokers           []string `yaml:"kafka_brokers"`
		KafkaTopicPostEvents   string   `yaml:"kafka_topic_post_events"`
		KafkaTopicTrustEvents  string   `yaml:"kafka_topic_trust_events"`
		KafkaTopicReportEvents string   `yaml:"kafka_topic_report_events"`
	} `yaml:"dependencies"`
	Trust struct {
		StatusWriteRetries int `yaml:"status_write_retries"`
		FeedCacheSeconds   int `yaml:"feed_cache_seconds"`
		FeedPageSize       int `yaml:"feed_page_size"`
	} `yaml:"trust"`
	Sync struct {
		IntervalMinutes int          `yaml:"interval_minutes"`
		Sources         []FeedSource `yaml:"sources"`
	} `yaml:"sync"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:              "campusecho",
		HTTPPort:               8080,
		MaxDBConns:             20,
		KafkaTopicPostEvents:   "campusecho.post.events",
		KafkaTopicTrustEvents:  "campusecho.trust.events",
		KafkaTopicReportEvents: "campusecho.report.events",
		OutboxPollInterval:     2 * time.Second,
		OutboxBatchSize:        100,
		SyncInterval:           10 * time.Minute,
		StatusWriteRetries:     3,
		FeedCacheTTL:           30 * time.Second,
		FeedPageSize:           50,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicPostEvents != "" {
			cfg.KafkaTopicPostEvents = f.Dependencies.KafkaTopicPostEvents
		}
		if f.Dependencies.KafkaTopicTrustEvents != "" {
			cfg.KafkaTopicTrustEvents = f.Dependencies.KafkaTopicTrustEvents
		}
		if f.Dependencies.KafkaTopicReportEvents != "" {
			cfg.KafkaTopicReportEvents = f.Dependencies.KafkaTopicReportEvents
		}
		if f.Trust.StatusWriteRetries > 0 {
			cfg.StatusWriteRetries = f.Trust.StatusWriteRetries
		}
		if f.Trust.FeedCacheSeconds > 0 {
			cfg.FeedCacheTTL = time.Duration(f.Trust.FeedCacheSeconds) * time.Second
		}
		if f.Trust.FeedPageSize > 0 {
			cfg.FeedPageSize = f.Trust.FeedPageSize
		}
		if f.Sync.IntervalMinutes > 0 {
			cfg.SyncInterval = time.Duration(f.Sync.IntervalMinutes) * time.Minute
		}
		cfg.FeedSources = f.Sync.Sources
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.SyncInterval = time.Duration(envInt("SYNC_INTERVAL_MINUTES", int(cfg.SyncInterval.Minutes()))) * time.Minute
	cfg.StatusWriteRetries = envInt("STATUS_WRITE_RETRIES", cfg.StatusWriteRetries)
	cfg.FeedCacheTTL = time.Duration(envInt("FEED_CACHE_SECONDS", int(cfg.FeedCacheTTL.Seconds()))) * time.Second
	cfg.FeedPageSize = envInt("FEED_PAGE_SIZE", cfg.FeedPageSize)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
