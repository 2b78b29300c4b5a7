//go:build integration

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store/drivers/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresServices(t *testing.T, ctx context.Context) (*Services, *postgres.Store) {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:18-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	st, err := postgres.Open(ctx, postgres.PoolConfig{
		ConnString: fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return New(st, newVault(t), metrics.New()), st
}

func TestIntegration_ConcurrentMutualDemotion(t *testing.T) {
	ctx := context.Background()
	svc, st := setupPostgresServices(t, ctx)

	c, err := svc.Bootstrap.Bootstrap(ctx, "alice", acme)
	require.NoError(t, err)
	_, err = svc.Members.Add(ctx, "alice", c, "bob", domain.RoleAdmin)
	require.NoError(t, err)

	admins := func() int {
		n, err := st.Roles().CountAdmins(ctx, c)
		require.NoError(t, err)
		return n
	}

	for round := range 20 {
		for _, remove := range []bool{false, true} {
			start := make(chan struct{})
			errs := make([]error, 2)
			var wg sync.WaitGroup
			for i, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
				wg.Go(func() {
					<-start
					if remove {
						errs[i] = svc.Members.Remove(ctx, pair[0], c, pair[1])
						return
					}
					_, errs[i] = svc.Members.ChangeRole(ctx, pair[0], c, pair[1], domain.RoleReadonly)
				})
			}
			close(start)
			wg.Wait()

			require.Equal(t, 1, admins(), "round %d remove=%v: %v", round, remove, errs)

			var survivor, other string
			switch {
			case errs[0] == nil && errs[1] != nil:
				survivor, other = "alice", "bob"
			case errs[1] == nil && errs[0] != nil:
				survivor, other = "bob", "alice"
			default:
				t.Fatalf("round %d remove=%v: exactly one change must win, got %v", round, remove, errs)
			}
			loser := errs[0]
			if loser == nil {
				loser = errs[1]
			}
			require.True(t, errors.Is(loser, policy.ErrDenied) || errors.Is(loser, ErrNotFound), loser)

			// Restore two admins for the next round.
			if remove {
				_, err := svc.Members.Add(ctx, survivor, c, other, domain.RoleAdmin)
				require.NoError(t, err)
			} else {
				_, err := svc.Members.ChangeRole(ctx, survivor, c, other, domain.RoleAdmin)
				require.NoError(t, err)
			}
			require.Equal(t, 2, admins())
		}
	}

	rep, err := svc.Audit.verify(ctx, c)
	require.NoError(t, err)
	require.True(t, rep.OK)
}
