package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DatabaseDriver:      DriverSQLite,
		DatabaseFile:        filepath.Join(t.TempDir(), "tenant.db"),
		VaultKey:            "vault-master-secret-for-tests",
		JWTIssuer:           "https://id.tally.test",
		JWTSecret:           "jwt-secret-for-tests-0123456789abcdef",
		BillingToken:        "billing",
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
		AuditVerifyInterval: time.Hour,
	}
}

func TestInitVault(t *testing.T) {
	logger := slogx.Discard()

	t.Run("missing key outside dev fails", func(t *testing.T) {
		_, err := InitVault(Config{Env: "prod"}, logger)
		require.Error(t, err)
	})

	t.Run("dev falls back to an ephemeral key", func(t *testing.T) {
		v, err := InitVault(Config{Env: "dev"}, logger)
		require.NoError(t, err)
		require.NotNil(t, v)
	})

	t.Run("key file wins over env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vault.key")
		require.NoError(t, os.WriteFile(path, []byte("file-secret-0123456789\n"), 0o600))

		fromFile, err := InitVault(Config{Env: "prod", VaultKeyPath: path, VaultKey: "env-secret-0123456789"}, logger)
		require.NoError(t, err)
		fromEnv, err := InitVault(Config{Env: "prod", VaultKey: "env-secret-0123456789"}, logger)
		require.NoError(t, err)

		blob, err := fromFile.EncryptString("s3cret", "user-1")
		require.NoError(t, err)
		_, ok := fromEnv.DecryptString(blob, "user-1")
		require.False(t, ok)
		got, ok := fromFile.DecryptString(blob, "user-1")
		require.True(t, ok)
		require.Equal(t, "s3cret", got)
	})
}

func TestInitVerifier(t *testing.T) {
	logger := slogx.Discard()

	_, err := InitVerifier(Config{}, logger)
	require.ErrorIs(t, err, ErrNoVerificationKey)

	_, err = InitVerifier(Config{JWTPublicKeyPath: filepath.Join(t.TempDir(), "missing.pem")}, logger)
	require.Error(t, err)

	cfg := testConfig(t)
	v, err := InitVerifier(cfg, logger)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewAccessClaims("user-1", time.Minute, cfg.JWTIssuer, nil, "", "", time.Now()))
	require.NoError(t, err)

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := OpenStore(t.Context(), Config{DatabaseDriver: "mysql"})
	require.Error(t, err)

	_, err = OpenStore(t.Context(), Config{DatabaseDriver: DriverPostgres})
	require.Error(t, err)
}

func TestApplicationServesRoutes(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	health, err := tenantsdk.NewClient(srv.URL, "").GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = tenantsdk.NewClient(srv.URL, "garbage").Me(t.Context())
	require.Error(t, err)
}
