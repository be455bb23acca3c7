package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// REST backend every screen talks to
	BackendBaseURL string
	BackendTimeout time.Duration

	// Screens
	DefaultPageSize int

	// Redis (transient notices, rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NoticeTTL     time.Duration

	// Google Cloud Storage (employee pictures)
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Proxies whose forwarding headers are believed; IPs or CIDRs, comma-separated.
	// Empty means client addresses come from the TCP peer only.
	TrustedProxies string

	// Export endpoints, requests per minute per IP (0 disables)
	ExportRateLimit int

	// Debug metrics (/api/debug/vars and /metrics)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "refdata-console"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		BackendBaseURL: strings.TrimRight(getenv("BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
		BackendTimeout: getdur("BACKEND_TIMEOUT", 15*time.Second),

		DefaultPageSize: getint("DEFAULT_PAGE_SIZE", 5),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		NoticeTTL:     getdur("NOTICE_TTL", 30*time.Second),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
		TrustedProxies:     getenv("TRUSTED_PROXIES", ""),

		ExportRateLimit: getint("EXPORT_RATE_LIMIT", 30),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string { return splitList(c.CORSAllowedOrigins) }

// TrustedProxyList returns the trusted proxy entries as slice.
func (c *Config) TrustedProxyList() []string { return splitList(c.TrustedProxies) }

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// PageSize returns size when it is one of the offered choices, otherwise the default.
func (c *Config) PageSize(size int) int {
	for _, s := range PageSizeChoices {
		if s == size {
			return size
		}
	}
	if c.DefaultPageSize > 0 {
		return c.DefaultPageSize
	}
	return 5
}

// PageSizeChoices are the page sizes a screen offers.
var PageSizeChoices = []int{3, 5, 10}
