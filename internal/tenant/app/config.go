package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: SQLite database file (default: ./tenant.db)
	DatabaseURL    string // Required for postgres: connection string
	DatabaseConns  int    // Optional: max postgres pool connections (default: 20)

	VaultKey     string // Optional: raw vault master secret
	VaultKeyPath string // Optional: file holding the vault master secret, wins over VaultKey

	JWTIssuer        string   // Optional: expected iss claim
	JWTAudience      []string // Optional: accepted aud values, comma separated
	JWTSecret        string   // Optional: HS256 verification secret
	JWTPublicKeyPath string   // Optional: PEM public key for RS256/ES256/EdDSA tokens
	JWTLeeway        time.Duration

	BillingToken string // Optional: shared token for billing events, empty refuses all

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	AuditVerifyInterval time.Duration // Audit chain verification interval (default: 6h)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: strings.ToLower(getEnvOrDefault("TENANT_DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("TENANT_DATABASE_FILE", "tenant.db"),
		DatabaseURL:    os.Getenv("TENANT_DATABASE_URL"),
		DatabaseConns:  getEnvIntOrDefault("TENANT_DATABASE_MAX_CONNS", 20),

		VaultKey:     os.Getenv(cryptox.MasterKeyEnv),
		VaultKeyPath: os.Getenv("TENANT_VAULT_KEY_PATH"),

		JWTIssuer:        os.Getenv("TENANT_JWT_ISSUER"),
		JWTAudience:      splitList(os.Getenv("TENANT_JWT_AUDIENCE")),
		JWTSecret:        os.Getenv("TENANT_JWT_SECRET"),
		JWTPublicKeyPath: os.Getenv("TENANT_JWT_PUBLIC_KEY_PATH"),
		JWTLeeway:        getEnvDurationOrDefault("TENANT_JWT_LEEWAY", 30*time.Second),

		BillingToken: os.Getenv("TENANT_BILLING_TOKEN"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		AuditVerifyInterval: getEnvDurationOrDefault("AUDIT_VERIFY_INTERVAL", 6*time.Hour),
	}
}

// IsDev reports whether development conveniences such as an ephemeral vault
// key are allowed.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
