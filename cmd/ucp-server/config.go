package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	ServerURL    string
	BusinessID   string
	BusinessName string

	// RedisAddr empty disables idempotency replay.
	RedisAddr      string
	IdempotencyTTL time.Duration

	SessionLogPath string

	TracingEnabled bool
	ServiceName    string
	OTLPEndpoint   string
	Environment    string
}

func loadConfig() (Config, error) {
	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BusinessID:     getEnv("BUSINESS_ID", "demo-store-001"),
		BusinessName:   getEnv("BUSINESS_NAME", "Demo Store"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		SessionLogPath: getEnv("SESSION_LOG_PATH", ":memory:"),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "ucp-server"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment:    getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
	}
	cfg.ServerURL = getEnv("SERVER_URL", "http://localhost:"+cfg.HTTPPort)

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = getDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.TracingEnabled, err = getBool("TRACING_ENABLED", false); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
