package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/stretchr/testify/require"
)

func TestTenantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance})
	b := f.company(t, "bob", nil)

	for _, p := range []string{"alice", "fay"} {
		for _, c := range policy.AllCapabilities {
			d, err := f.Guard.Check(ctx, p, b, c)
			require.NoError(t, err)
			require.False(t, d.Allowed, "%s must not get %s on another company", p, c)
			require.Equal(t, policy.ReasonNotMember, d.Reason)
		}
	}

	_, err := f.Companies.Get(ctx, "alice", b)
	require.ErrorIs(t, err, policy.ErrDenied)
	_, err = f.Transactions.List(ctx, "bob", a, 0)
	require.ErrorIs(t, err, policy.ErrDenied)
	_, err = f.Audit.Query(ctx, "alice", b, domain.AuditFilter{})
	require.ErrorIs(t, err, policy.ErrDenied)

	d, err := f.Guard.Check(ctx, "nobody", a, policy.CapCompanyRead)
	require.NoError(t, err)
	require.False(t, d.Allowed)
}

func TestSubscriptionGating(t *testing.T) {
	for _, status := range []domain.SubscriptionStatus{domain.SubscriptionSuspended, domain.SubscriptionCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			c := f.company(t, "alice", nil)

			f.setStatus(t, c, status)

			for _, capability := range policy.AllCapabilities {
				_, err := f.Guard.Authorize(ctx, "alice", c, capability)
				if capability == policy.CapSubscriptionRead {
					require.NoError(t, err)
					continue
				}
				require.ErrorIs(t, err, policy.ErrSubscriptionInactive, capability)
				require.NotErrorIs(t, err, policy.ErrDenied)
			}

			sub, err := f.Subscriptions.Get(ctx, "alice", c)
			require.NoError(t, err)
			require.Equal(t, status, sub.Status)

			_, err = f.Transactions.Create(ctx, "alice", c, domain.TransactionInput{Description: "rent", AmountCents: 100})
			require.ErrorIs(t, err, policy.ErrSubscriptionInactive)

			active, err := f.Subscriptions.IsActive(ctx, c)
			require.NoError(t, err)
			require.False(t, active)

			f.setStatus(t, c, domain.SubscriptionActive)
			_, err = f.Transactions.Create(ctx, "alice", c, domain.TransactionInput{Description: "rent", AmountCents: 100})
			require.NoError(t, err)
		})
	}
}

func TestLastAdminProtection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance})

	_, err := f.Members.ChangeRole(ctx, "alice", c, "alice", domain.RoleReadonly)
	require.ErrorIs(t, err, policy.ErrLastAdmin)

	err = f.Members.Remove(ctx, "alice", c, "alice")
	require.ErrorIs(t, err, policy.ErrLastAdmin)

	a, err := f.Directory.Membership(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, a.Role)

	t.Run("keeping the admin role is allowed", func(t *testing.T) {
		_, err := f.Members.ChangeRole(ctx, "alice", c, "alice", domain.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("with a second admin the first may step down", func(t *testing.T) {
		_, err := f.Members.ChangeRole(ctx, "alice", c, "fay", domain.RoleAdmin)
		require.NoError(t, err)

		updated, err := f.Members.ChangeRole(ctx, "alice", c, "alice", domain.RoleFinance)
		require.NoError(t, err)
		require.Equal(t, domain.RoleFinance, updated.Role)

		// fay is now the only admin
		err = f.Members.Remove(ctx, "fay", c, "fay")
		require.ErrorIs(t, err, policy.ErrLastAdmin)
	})
}

// A requester demoted while its role change waited on the admin row locks
// is judged on the role it holds after the wait.
func TestRoleChangeRereadsRequesterAfterAdminLock(t *testing.T) {
	ctx := context.Background()

	for _, remove := range []bool{false, true} {
		name := "change role"
		if remove {
			name = "remove"
		}
		t.Run(name, func(t *testing.T) {
			f, h := newHookedFixture(t)
			c := f.company(t, "alice", map[string]domain.Role{"bob": domain.RoleAdmin})

			// Stands in for alice demoting bob and committing while bob's
			// transaction is blocked in CountAdmins.
			h.beforeCountAdmins = func(ctx context.Context, tx store.Tx) {
				require.NoError(t, tx.Roles().UpdateAssignmentRole(ctx, c, "bob", domain.RoleFinance))
			}

			var err error
			if remove {
				err = f.Members.Remove(ctx, "bob", c, "alice")
			} else {
				_, err = f.Members.ChangeRole(ctx, "bob", c, "alice", domain.RoleReadonly)
			}
			var denied *policy.DeniedError
			require.ErrorAs(t, err, &denied)
			require.Equal(t, policy.ReasonRoleLacksCapability, denied.Reason)

			a, err := f.Directory.Membership(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, domain.RoleAdmin, a.Role)

			n, err := f.store.Roles().CountAdmins(ctx, c)
			require.NoError(t, err)
			require.Equal(t, 2, n, "the denied transaction rolls back")
		})
	}
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	me, err := f.Directory.Me(ctx, "newbie")
	require.NoError(t, err)
	require.Nil(t, me.CompanyID)
	require.Empty(t, me.Capabilities)

	c := f.company(t, "alice", map[string]domain.Role{"rita": domain.RoleReadonly})

	me, err = f.Directory.Me(ctx, "rita")
	require.NoError(t, err)
	require.Equal(t, c, *me.CompanyID)
	require.Equal(t, domain.RoleReadonly, me.Role)
	require.ElementsMatch(t, policy.CapabilitiesOf(domain.RoleReadonly), me.Capabilities)

	f.setStatus(t, c, domain.SubscriptionSuspended)
	me, err = f.Directory.Me(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.SubscriptionSuspended, me.Subscription)
	require.Equal(t, []policy.Capability{policy.CapSubscriptionRead}, me.Capabilities)
}
