package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/aussiebroadwan/tally/cmd/tenantctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Migrate   commands.MigrateCmd   `cmd:"" help:"Apply pending database migrations"`
		Billing   commands.BillingCmd   `cmd:"" help:"Send billing events to the tenant service"`
		Audit     commands.AuditCmd     `cmd:"" help:"Inspect the audit ledger"`
		Token     commands.TokenCmd     `cmd:"" help:"Generate development access tokens"`
		Bootstrap commands.BootstrapCmd `cmd:"" help:"Provision a company for the token's principal"`
		Debug     bool                  `help:"Enable debug logging."`
		Version   kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("tenantctl"),
		kong.Description("Operator tooling for the Tally tenant service."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
