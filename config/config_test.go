package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"REPORT_API_BASE_URL", "DB_SSL", "DB_SSLMODE", "DISPLAY_TIMEZONE", "REPORT_CACHE_TTL", "DB_MAX_CONNS"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "http://localhost:3001", cfg.ReportAPIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, "disable", cfg.SSLMode())
	assert.Equal(t, "America/Santiago", cfg.DisplayTimezone)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "report")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "enrol")
	t.Setenv("DB_SSL", "true")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")
	t.Setenv("ELASTICSEARCH_ADDRS", "")

	cfg := Load()

	assert.Equal(t, "postgres://report:pw@db:6543/enrol?sslmode=require", cfg.PostgresDSN())
	assert.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())

	t.Setenv("DB_SSLMODE", "verify-full")
	assert.Equal(t, "verify-full", Load().SSLMode())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{DisplayTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	cfg := &Config{DBUser: "report@ops", DBPassword: "p@ss/w#rd:?", DBHost: "db", DBPort: "5432", DBName: "enrol"}

	u, err := url.Parse(cfg.PostgresDSN())
	require.NoError(t, err)
	assert.Equal(t, "report@ops", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/w#rd:?", pw)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/enrol", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}
