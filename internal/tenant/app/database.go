package app

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/internal/tenant/store/drivers/postgres"
	"github.com/aussiebroadwan/tally/internal/tenant/store/drivers/sqlite"
)

// OpenStore opens the configured driver without touching the schema.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverSQLite, "":
		return sqlite.NewStore(cfg.DatabaseFile)
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("TENANT_DATABASE_URL is required for the postgres driver")
		}
		return postgres.Open(ctx, postgres.PoolConfig{
			ConnString: cfg.DatabaseURL,
			MaxConns:   int32(cfg.DatabaseConns),
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

// OpenMigratedStore opens the store and brings its schema up to date.
func OpenMigratedStore(ctx context.Context, cfg Config) (store.Store, error) {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return st, nil
}
