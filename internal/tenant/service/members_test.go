package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/stretchr/testify/require"
)

func TestMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance, "rita": domain.RoleReadonly})
	other := f.company(t, "bob", nil)

	t.Run("everyone can list", func(t *testing.T) {
		members, err := f.Members.List(ctx, "rita", c)
		require.NoError(t, err)
		require.Len(t, members, 3)
	})

	t.Run("only admins manage roles", func(t *testing.T) {
		_, err := f.Members.Add(ctx, "fay", c, "newbie", domain.RoleReadonly)
		require.ErrorIs(t, err, policy.ErrDenied)

		_, err = f.Members.ChangeRole(ctx, "fay", c, "fay", domain.RoleAdmin)
		require.ErrorIs(t, err, policy.ErrDenied)

		var denied *policy.DeniedError
		require.ErrorAs(t, err, &denied)
		require.Equal(t, policy.ReasonRoleLacksCapability, denied.Reason)
	})

	t.Run("one home company per principal", func(t *testing.T) {
		_, err := f.Members.Add(ctx, "alice", c, "bob", domain.RoleReadonly)
		require.ErrorIs(t, err, ErrPrincipalHasCompany)

		home, _, err := f.Directory.ResolveHomeCompany(ctx, "bob")
		require.NoError(t, err)
		require.Equal(t, other, home)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.Members.Add(ctx, "alice", c, "newbie", domain.Role("owner"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("members of other companies are not found", func(t *testing.T) {
		_, err := f.Members.ChangeRole(ctx, "alice", c, "bob", domain.RoleFinance)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, f.Members.Remove(ctx, "alice", c, "bob"), ErrNotFound)
	})

	t.Run("remove drops credentials and unlinks the profile", func(t *testing.T) {
		_, err := f.Credentials.Save(ctx, "fay", c, "stripe", domain.CredentialSecrets{APIKey: "sk_live_abcdef"}, true)
		require.NoError(t, err)

		require.NoError(t, f.Members.Remove(ctx, "alice", c, "fay"))

		_, ok, err := f.Directory.ResolveHomeCompany(ctx, "fay")
		require.NoError(t, err)
		require.False(t, ok)

		p, err := f.store.Profiles().GetProfile(ctx, "fay")
		require.NoError(t, err)
		require.Nil(t, p.CompanyID)

		creds, err := f.store.Credentials().ListCredentials(ctx, "fay", c)
		require.NoError(t, err)
		require.Empty(t, creds)

		// A removed principal starts over.
		again, err := f.Bootstrap.Bootstrap(ctx, "fay", acme)
		require.NoError(t, err)
		require.NotEqual(t, c, again)
	})

	t.Run("role changes are audited", func(t *testing.T) {
		_, err := f.Members.ChangeRole(ctx, "alice", c, "rita", domain.RoleFinance)
		require.NoError(t, err)

		records, err := f.Audit.Query(ctx, "alice", c, domain.AuditFilter{Table: domain.TableRoleAssignments, Limit: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, domain.AuditUpdate, records[0].Action)
		require.Equal(t, "alice", records[0].PrincipalID)
		require.Contains(t, string(records[0].OldSnapshot), `"role":"readonly"`)
		require.Contains(t, string(records[0].NewSnapshot), `"role":"finance"`)
	})
}
