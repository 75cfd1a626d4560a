package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"AUDIT_ARMOR_ADDR", "DATA_DIR", "FRONTEND_DIR", "LOG_LEVEL", "LOG_FORMAT",
		"CHAIN_FILE_LOCK", "MAX_UPLOAD_BYTES", "UPLOAD_RATE_LIMIT", "UPLOAD_RATE_WINDOW",
		"REDIS_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "PUBLISH_BUFFER",
		"CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/tmp/audit_armor_data", cfg.DataDir)
	assert.Empty(t, cfg.FrontendDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.ChainFileLock)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "audit-chain", cfg.Kafka.Topic)
	assert.Equal(t, 256, cfg.Kafka.PublishBuffer)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AUDIT_ARMOR_ADDR", ":9090")
	t.Setenv("DATA_DIR", "/var/lib/audit")
	t.Setenv("CHAIN_FILE_LOCK", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("UPLOAD_RATE_WINDOW", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,kafka-1:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://armor.example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.50")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/audit", cfg.DataDir)
	assert.True(t, cfg.ChainFileLock)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://armor.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.50"}, cfg.TrustedProxies)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("UPLOAD_RATE_LIMIT", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")
	t.Setenv("CHAIN_FILE_LOCK", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.ChainFileLock)
}
