package config

import (
	"log"
	"net"
	"net/url"
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

	LogLevel string // optional override: debug, info, warn, error

	// Database
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSL            bool
	DBSSLMode        string // overrides DBSSL when set
	DBMaxConns       int32
	DBMinConns       int32
	DBMaxConnLife    time.Duration
	DBMaxConnIdle    time.Duration
	DBConnectTimeout time.Duration

	// Migrations
	MigrationsDir string
	RunMigrations bool

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Upstream reporting service
	ReportAPIBaseURL string
	ReportAPITimeout time.Duration
	ReportCacheTTL   time.Duration

	// Stored timestamps are rendered in this zone
	DisplayTimezone string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Operator auth for reason writes
	OperatorAuthEnabled bool
	JWTAccessSecret     string
	AccessTTL           time.Duration

	// Google Cloud Storage (profile photos)
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// RabbitMQ
	RabbitMQURL         string
	RabbitMQReasonQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESReasonsIndex     string

	MetricsEnabled bool

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
		AppName: getenv("APP_NAME", "digital-user-report"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		LogLevel: getenv("LOG_LEVEL", ""),

		DBHost:           getenv("DB_HOST", "localhost"),
		DBPort:           getenv("DB_PORT", "5432"),
		DBUser:           getenv("DB_USER", "postgres"),
		DBPassword:       getenv("DB_PASSWORD", "postgres"),
		DBName:           getenv("DB_NAME", "reportdb"),
		DBSSL:            getbool("DB_SSL", false),
		DBSSLMode:        getenv("DB_SSLMODE", ""),
		DBMaxConns:       int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:       int32(getint("DB_MIN_CONNS", 0)),
		DBMaxConnLife:    getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdle:    getdur("DB_MAX_CONN_IDLE", 30*time.Second),
		DBConnectTimeout: getdur("DB_CONNECT_TIMEOUT", 15*time.Second),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),
		RunMigrations: getbool("RUN_MIGRATIONS", true),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		ReportAPIBaseURL: getenv("REPORT_API_BASE_URL", "http://localhost:3001"),
		ReportAPITimeout: getdur("REPORT_API_TIMEOUT", 20*time.Second),
		ReportCacheTTL:   getdur("REPORT_CACHE_TTL", 30*time.Second),

		DisplayTimezone: getenv("DISPLAY_TIMEZONE", "America/Santiago"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		OperatorAuthEnabled: getbool("OPERATOR_AUTH_ENABLED", false),
		JWTAccessSecret:     getenv("JWT_ACCESS_SECRET", "devaccesssecret"),
		AccessTTL:           getdur("JWT_ACCESS_TTL", 12*time.Hour),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQReasonQueue: getenv("RABBITMQ_REASON_QUEUE", "reason-events"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESReasonsIndex:     getenv("ES_REASONS_INDEX", "motivos"),

		MetricsEnabled: getbool("METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// SSLMode resolves the sslmode DSN parameter from DB_SSLMODE or the DB_SSL toggle
func (c *Config) SSLMode() string {
	if c.DBSSLMode != "" {
		return c.DBSSLMode
	}
	if c.DBSSL {
		return "require"
	}
	return "disable"
}

// PostgresDSN returns a DSN compatible with pgx and golang-migrate.
// Credentials are escaped, so passwords may contain URL delimiters.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode()}}.Encode(),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitCSV(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitCSV(c.ElasticsearchAddrs)
}

// Location returns the display timezone, falling back to UTC when it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		log.Printf("invalid DISPLAY_TIMEZONE %q: %v, using UTC", c.DisplayTimezone, err)
		return time.UTC
	}
	return loc
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
