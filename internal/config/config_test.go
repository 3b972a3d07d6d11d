package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "SESSION_TTL_HOURS", "RESULT_CAS_RETRIES", "COOKIE_SECURE", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 8, cfg.ResultCASRetries)
	require.False(t, cfg.CookieSecure)
	require.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("RESULT_CAS_RETRIES", "not-a-number")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := config.Load()
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 8, cfg.ResultCASRetries)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	require.Equal(t, "exam:2024-01-01-mock:results", config.CacheKey.ExamResultsKey("2024-01-01-mock"))
	require.Equal(t, "exam:x:results:live", config.CacheKey.ExamResultsChannel("x"))
	require.Equal(t, "admin:session:abc", config.CacheKey.AdminSessionKey("abc"))
}
