package commands

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/tally/internal/tenant/app"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

type Globals struct {
	Debug   bool
	Version string
}

func (g *Globals) Logger() *slog.Logger {
	level := "warn"
	if g.Debug {
		level = "debug"
	}
	return slogx.New(slogx.Config{
		Service: "tenantctl",
		Version: g.Version,
		Level:   level,
		Format:  "text",
	})
}

// DatabaseFlags select the store the same way the server does.
type DatabaseFlags struct {
	Driver string `help:"Database driver (sqlite, postgres)" default:"sqlite" enum:"sqlite,postgres" env:"TENANT_DATABASE_DRIVER"`
	File   string `help:"SQLite database file" default:"tenant.db" env:"TENANT_DATABASE_FILE" type:"path"`
	URL    string `help:"PostgreSQL connection string" env:"TENANT_DATABASE_URL"`
}

func (d DatabaseFlags) config() app.Config {
	return app.Config{
		DatabaseDriver: d.Driver,
		DatabaseFile:   d.File,
		DatabaseURL:    d.URL,
	}
}

func (d DatabaseFlags) open(ctx context.Context) (store.Store, error) {
	return app.OpenStore(ctx, d.config())
}

// ServerFlags address a running tenant service.
type ServerFlags struct {
	Server string `help:"Tenant service URL" default:"http://localhost:8080" env:"TENANT_SERVER_URL"`
}
