package config

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	DataDir         string
	FrontendDir     string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	// ChainFileLock adds a cross-process advisory lock around chain writes,
	// needed when several processes share DataDir.
	ChainFileLock bool

	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	// TrustedProxies are the peers (CIDR or address) whose X-Forwarded-For
	// and X-Real-IP headers identify the client.
	TrustedProxies     []string

	RateLimit RateLimitConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
}

// RateLimitConfig bounds evidence uploads per client IP.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RedisConfig configures the optional Redis client. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures chain tip announcements. No brokers disables the
// Kafka sink.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	PublishBuffer int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            getenv("AUDIT_ARMOR_ADDR", ":8080"),
		DataDir:         getenv("DATA_DIR", "/tmp/audit_armor_data"),
		FrontendDir:     getenv("FRONTEND_DIR", ""),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		ChainFileLock: getBool("CHAIN_FILE_LOCK", false),

		MaxUploadBytes:     int64(getInt("MAX_UPLOAD_BYTES", 32<<20)),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getList("TRUSTED_PROXIES", nil),

		RateLimit: RateLimitConfig{
			Limit:  getInt("UPLOAD_RATE_LIMIT", 30),
			Window: getDuration("UPLOAD_RATE_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			URL:          getenv("REDIS_URL", ""),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       getList("KAFKA_BROKERS", nil),
			Topic:         getenv("KAFKA_TOPIC", "audit-chain"),
			PublishBuffer: getInt("PUBLISH_BUFFER", 256),
		},
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// getList splits a comma-separated value, dropping empty and repeated items.
func getList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
