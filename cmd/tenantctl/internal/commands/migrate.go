package commands

import (
	"context"
	"fmt"
)

type MigrateCmd struct {
	DatabaseFlags `embed:""`
}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	st, err := m.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	globals.Logger().Debug("migrations applied", "driver", m.Driver)
	fmt.Printf("Migrations applied (%s)\n", m.Driver)
	return nil
}
