package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestBootstrapAcme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1, err := f.Bootstrap.Bootstrap(ctx, "U", acme)
	require.NoError(t, err)
	require.NotEmpty(t, c1)

	a, err := f.Directory.Membership(ctx, "U")
	require.NoError(t, err)
	require.Equal(t, c1, a.CompanyID)
	require.Equal(t, domain.RoleAdmin, a.Role)

	sub, err := f.Subscriptions.Get(ctx, "U", c1)
	require.NoError(t, err)
	require.Equal(t, domain.SubscriptionActive, sub.Status)
	require.Equal(t, domain.DefaultPlan, sub.Plan)
	require.Zero(t, sub.AmountCents)

	p, err := f.store.Profiles().GetProfile(ctx, "U")
	require.NoError(t, err)
	require.NotNil(t, p.CompanyID)
	require.Equal(t, c1, *p.CompanyID)

	t.Run("second call with different input returns the first company", func(t *testing.T) {
		again, err := f.Bootstrap.Bootstrap(ctx, "U", domain.CompanyInput{Name: "Other Co", TaxID: "99.999.999/0001-99"})
		require.NoError(t, err)
		require.Equal(t, c1, again)

		c, err := f.Companies.Get(ctx, "U", c1)
		require.NoError(t, err)
		require.Equal(t, "Acme", c.Name)
	})

	t.Run("repeat call ignores invalid input", func(t *testing.T) {
		again, err := f.Bootstrap.Bootstrap(ctx, "U", domain.CompanyInput{})
		require.NoError(t, err)
		require.Equal(t, c1, again)
	})

	t.Run("bootstrap is audited under the principal", func(t *testing.T) {
		records, err := f.Audit.Query(ctx, "U", c1, domain.AuditFilter{})
		require.NoError(t, err)
		require.Len(t, records, 4)

		tables := map[string]bool{}
		for _, r := range records {
			require.Equal(t, "U", r.PrincipalID)
			tables[r.Table] = true
		}
		require.True(t, tables[domain.TableCompanies])
		require.True(t, tables[domain.TableRoleAssignments])
		require.True(t, tables[domain.TableSubscriptions])
		require.True(t, tables[domain.TableProfiles])

		rep, err := f.Audit.Verify(ctx, "U", c1)
		require.NoError(t, err)
		require.True(t, rep.OK)
		require.Equal(t, int64(4), rep.HeadSeq)
	})

	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Bootstraps.WithLabelValues(metrics.BootstrapCreated)))
	require.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Bootstraps.WithLabelValues(metrics.BootstrapExisting)))
}

func TestBootstrapFailureLeavesNoPartialTenant(t *testing.T) {
	for _, failAt := range []string{domain.TableRoleAssignments, domain.TableSubscriptions, domain.TableProfiles} {
		t.Run("audit of "+failAt+" fails", func(t *testing.T) {
			f, h := newHookedFixture(t)
			ctx := context.Background()

			errAppend := errors.New("disk full")
			var companyID string
			h.appendAudit = func(r domain.AuditRecord) error {
				companyID = r.CompanyID
				if r.Table == failAt {
					return errAppend
				}
				return nil
			}

			_, err := f.Bootstrap.Bootstrap(ctx, "U", acme)
			require.ErrorIs(t, err, errAppend)
			require.NotEmpty(t, companyID)

			_, ok, err := f.Directory.ResolveHomeCompany(ctx, "U")
			require.NoError(t, err)
			require.False(t, ok)

			_, err = f.store.Companies().GetCompanyByID(ctx, companyID)
			require.ErrorIs(t, err, store.ErrNotFound)
			_, err = f.store.Subscriptions().GetSubscriptionByCompany(ctx, companyID)
			require.ErrorIs(t, err, store.ErrNotFound)
			_, err = f.store.Profiles().GetProfile(ctx, "U")
			require.ErrorIs(t, err, store.ErrNotFound)
			chain, err := f.store.Audit().ListAllAudit(ctx, companyID)
			require.NoError(t, err)
			require.Empty(t, chain)

			require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Bootstraps.WithLabelValues(metrics.BootstrapFailed)))

			// Once the fault clears the principal bootstraps normally.
			h.appendAudit = nil
			c, err := f.Bootstrap.Bootstrap(ctx, "U", acme)
			require.NoError(t, err)
			require.NotEqual(t, companyID, c)

			rep, err := f.Audit.Verify(ctx, "U", c)
			require.NoError(t, err)
			require.True(t, rep.OK)
			require.Equal(t, int64(4), rep.HeadSeq)
		})
	}
}

func TestBootstrapConcurrentSamePrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 12
	var (
		wg   sync.WaitGroup
		ids  = make([]string, n)
		errs = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := acme
			in.Name = "Acme " + string(rune('A'+i))
			ids[i], errs[i] = f.Bootstrap.Bootstrap(ctx, "U", in)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i])
	}

	companies, err := f.store.Audit().ListAuditCompanies(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{ids[0]}, companies)

	members, err := f.Members.List(ctx, "U", ids[0])
	require.NoError(t, err)
	require.Len(t, members, 1)

	chain, err := f.store.Audit().ListAllAudit(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, chain, 4)
	require.True(t, ledger.Verify(ids[0], chain).OK)
}

func TestBootstrapConcurrentDifferentPrincipals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	principals := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	ids := make([]string, len(principals))
	var wg sync.WaitGroup
	for i, p := range principals {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			id, err := f.Bootstrap.Bootstrap(ctx, p, acme)
			if err == nil {
				ids[i] = id
			}
		}(i, p)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, p := range principals {
		require.NotEmpty(t, ids[i], "bootstrap for %s failed", p)
		require.False(t, seen[ids[i]], "companies must be distinct")
		seen[ids[i]] = true

		home, ok, err := f.Directory.ResolveHomeCompany(ctx, p)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, ids[i], home)
	}
}

func TestBootstrapValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    domain.CompanyInput
		field string
	}{
		{"missing name", domain.CompanyInput{TaxID: "123"}, "name"},
		{"blank name", domain.CompanyInput{Name: "   ", TaxID: "123"}, "name"},
		{"missing tax id", domain.CompanyInput{Name: "Acme"}, "tax_id"},
		{"letters in tax id", domain.CompanyInput{Name: "Acme", TaxID: "12ABC"}, "tax_id"},
		{"bad email", domain.CompanyInput{Name: "Acme", TaxID: "123", Email: "nope"}, "email"},
		{"bad phone", domain.CompanyInput{Name: "Acme", TaxID: "123", Phone: "call me"}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Bootstrap.Bootstrap(ctx, "U", tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := f.Bootstrap.Bootstrap(ctx, "", acme)
	require.ErrorIs(t, err, ErrInvalidInput)

	has, err := f.Directory.HasAnyRole(ctx, "U")
	require.NoError(t, err)
	require.False(t, has, "failed bootstrap must leave nothing behind")
}
