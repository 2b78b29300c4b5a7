package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/stretchr/testify/require"
)

func TestCompanyUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance})

	_, err := f.Companies.Update(ctx, "fay", c, domain.CompanyInput{Name: "Hijack", TaxID: "1"})
	require.ErrorIs(t, err, policy.ErrDenied)

	updated, err := f.Companies.Update(ctx, "alice", c, domain.CompanyInput{
		Name: " Acme Ltd ", TaxID: "12.345.678/0001-90", Email: "billing@acme.test",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", updated.Name)

	got, err := f.Companies.Get(ctx, "fay", c)
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", got.Name)
	require.Equal(t, "billing@acme.test", got.Email)

	records, err := f.Audit.Query(ctx, "alice", c, domain.AuditFilter{Table: domain.TableCompanies, Limit: 1})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Contains(t, string(records[0].OldSnapshot), `"name":"Acme"`)
	require.Contains(t, string(records[0].NewSnapshot), `"name":"Acme Ltd"`)
}

func TestCompanyDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance})
	_, err := f.Transactions.Create(ctx, "fay", c, domain.TransactionInput{Description: "sale", AmountCents: 10})
	require.NoError(t, err)
	_, err = f.Credentials.Save(ctx, "fay", c, "stripe", domain.CredentialSecrets{APIKey: "sk_live_abcdef"}, true)
	require.NoError(t, err)

	require.ErrorIs(t, f.Companies.Delete(ctx, "fay", c), policy.ErrDenied)
	require.NoError(t, f.Companies.Delete(ctx, "alice", c))

	for _, p := range []string{"alice", "fay"} {
		_, ok, err := f.Directory.ResolveHomeCompany(ctx, p)
		require.NoError(t, err)
		require.False(t, ok)
	}

	_, err = f.Subscriptions.Status(ctx, c)
	require.ErrorIs(t, err, ErrNotFound)

	chain, err := f.store.Audit().ListAllAudit(ctx, c)
	require.NoError(t, err)
	last := chain[len(chain)-1]
	require.Equal(t, domain.TableCompanies, last.Table)
	require.Equal(t, domain.AuditDelete, last.Action)
	require.Equal(t, "alice", last.PrincipalID)

	t.Run("cascaded rows are audited", func(t *testing.T) {
		// alice: profile, role. fay: credential, profile, role. Then the
		// subscription and the company.
		tail := chain[len(chain)-7:]
		actions := map[string]int{}
		for _, r := range tail {
			actions[r.Table+" "+string(r.Action)]++
			if r.Table == domain.TableProfiles {
				require.JSONEq(t, `null`, profileCompanyID(t, r.NewSnapshot))
			}
		}
		require.Equal(t, map[string]int{
			"credentials delete":      1,
			"profiles update":         2,
			"role_assignments delete": 2,
			"subscriptions delete":    1,
			"companies delete":        1,
		}, actions)

		rep, err := f.Audit.verify(ctx, c)
		require.NoError(t, err)
		require.True(t, rep.OK)
	})
}

// profileCompanyID returns the raw company_id of a profile snapshot.
func profileCompanyID(t *testing.T, snap []byte) string {
	t.Helper()
	var p struct {
		CompanyID json.RawMessage `json:"company_id"`
	}
	require.NoError(t, json.Unmarshal(snap, &p))
	return string(p.CompanyID)
}
