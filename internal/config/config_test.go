package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://clinic.example, https://admin.clinic.example ,")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://clinic.example", "https://admin.clinic.example"}, cfg.CORSOrigins)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"JWT_TTL":           "forever",
		"RATE_LIMIT_BURST":  "0",
		"BATCH_CONCURRENCY": "x",
		"STORAGE_TYPE":      "ftp",
		"LOG_FORMAT":        "xml",
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "s3")
	t.Setenv("S3_BUCKET", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("S3_BUCKET", "clinic-media")
	t.Setenv("S3_REGION", "eu-central-1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "clinic-media", cfg.Storage.S3.Bucket)
}
