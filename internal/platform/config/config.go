// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	JWTSigningKey string

	// Model artifact registry.
	ModelDir     string
	ModelVersion string

	// Optional reference population export for percentile comparisons.
	ReferencePath string

	// Optional backing services. Empty values select in-memory fallbacks.
	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig

	Scoring ScoringConfig
	Cache   CacheConfig
}

// RedisConfig tunes the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig locates the audit event broker.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ScoringConfig holds the business constants the scoring pipeline depends on.
// Both defaults come from the trained model's assumptions; override only in
// lockstep with retraining.
type ScoringConfig struct {
	// BurnRatePenalty substitutes for outflow/inflow when a business shows
	// spend with no revenue.
	BurnRatePenalty float64
	// AvgConversionValue is the assumed monetary value of one ad conversion,
	// used to estimate ad-attributable revenue.
	AvgConversionValue float64
}

// CacheConfig bounds the short-lived result cache.
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("ALTSCORE_ADDR", ":8080"),
		JWTSigningKey: envOr("ALTSCORE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		ModelDir:      envOr("ALTSCORE_MODEL_DIR", "models"),
		ModelVersion:  envOr("ALTSCORE_MODEL_VERSION", "v1"),
		ReferencePath: os.Getenv("ALTSCORE_REFERENCE_PATH"),
		PostgresDSN:   os.Getenv("ALTSCORE_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("ALTSCORE_REDIS_URL"),
			PoolSize:     envIntOr("ALTSCORE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("ALTSCORE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("ALTSCORE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("ALTSCORE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("ALTSCORE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("ALTSCORE_KAFKA_BROKERS")),
			Topic:   envOr("ALTSCORE_KAFKA_AUDIT_TOPIC", "altscore.audit"),
		},
		Scoring: ScoringConfig{
			BurnRatePenalty:    envFloatOr("ALTSCORE_BURN_RATE_PENALTY", 10.0),
			AvgConversionValue: envFloatOr("ALTSCORE_AVG_CONVERSION_VALUE", 5000.0),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("ALTSCORE_CACHE_MAX_ENTRIES", 1024),
			TTL:        envDurationOr("ALTSCORE_CACHE_TTL", 15*time.Minute),
		},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
