package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"TENANT_DATABASE_DRIVER", "TENANT_DATABASE_FILE", "TENANT_JWT_AUDIENCE",
		"ENV", "PORT", "SHUTDOWN_GRACE_PERIOD", "AUDIT_VERIFY_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "tenant.db", cfg.DatabaseFile)
	require.Equal(t, "dev", cfg.Env)
	require.True(t, cfg.IsDev())
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 6*time.Hour, cfg.AuditVerifyInterval)
	require.Empty(t, cfg.JWTAudience)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TENANT_DATABASE_DRIVER", "Postgres")
	t.Setenv("TENANT_DATABASE_URL", "postgres://tally@db/tally")
	t.Setenv("TENANT_JWT_AUDIENCE", "tally-api, tally-web ,")
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("AUDIT_VERIFY_INTERVAL", "90")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://tally@db/tally", cfg.DatabaseURL)
	require.Equal(t, []string{"tally-api", "tally-web"}, cfg.JWTAudience)
	require.False(t, cfg.IsDev())
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 90*time.Minute, cfg.AuditVerifyInterval)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}
