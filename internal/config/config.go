package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "clinic.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "24h"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultRateLimitRPS     = "1"
	defaultRateLimitBurst   = "5"
	defaultRateLimitWindow  = "1m"
	defaultStorageType      = "local"
	defaultStorageLocalDir  = "./uploads"
	defaultStoragePublicURL = "/static/uploads"
	defaultBatchConcurrency = "8"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	DatabaseURL      string
	JWTSecret        string
	JWTTTL           time.Duration
	Log              LogConfig
	Redis            RedisConfig
	RateLimit        RateLimitConfig
	Storage          StorageConfig
	CORSOrigins      []string
	BatchConcurrency int
}

type LogConfig struct {
	Level  string
	Format string // json | console
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a shared Redis instance is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// RateLimitConfig applies to public submissions (bookings, messages).
// Burst requests per Window are allowed through Redis; the in-process
// fallback refills at RPS with the same Burst.
type RateLimitConfig struct {
	RPS    float64
	Burst  int
	Window time.Duration
}

type StorageConfig struct {
	Type      string // local | s3
	LocalDir  string
	PublicURL string
	S3        S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	cfg.Log = LogConfig{
		Level:  strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))),
		Format: strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat))),
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}

	cfg.Redis.Addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	if cfg.RateLimit.RPS, err = parseFloatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = parseIntEnv("RATE_LIMIT_BURST", defaultRateLimitBurst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = parseDurationEnv("RATE_LIMIT_WINDOW", defaultRateLimitWindow); err != nil {
		return nil, err
	}

	cfg.Storage = StorageConfig{
		Type:      strings.ToLower(strings.TrimSpace(getEnv("STORAGE_TYPE", defaultStorageType))),
		LocalDir:  strings.TrimSpace(getEnv("STORAGE_LOCAL_DIR", defaultStorageLocalDir)),
		PublicURL: strings.TrimRight(strings.TrimSpace(getEnv("STORAGE_PUBLIC_URL", defaultStoragePublicURL)), "/"),
		S3: S3Config{
			Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:    strings.TrimSpace(os.Getenv("S3_REGION")),
			AccessKey: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
			Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		},
	}

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.BatchConcurrency, err = parseIntEnv("BATCH_CONCURRENCY", defaultBatchConcurrency); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RateLimit.RPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be > 0")
	}
	if cfg.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be > 0")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	if cfg.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be > 0")
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}

	switch cfg.Storage.Type {
	case "local":
		if cfg.Storage.LocalDir == "" {
			return fmt.Errorf("STORAGE_LOCAL_DIR must not be empty")
		}
	case "s3":
		if cfg.Storage.S3.Bucket == "" || cfg.Storage.S3.Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required when STORAGE_TYPE=s3")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of: local, s3")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
