//go:build e2e

package tenant_test

import (
	"sync"
	"testing"

	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
	"github.com/stretchr/testify/require"
)

// TestBootstrapProvisionsCompany verifies the first bootstrap makes the
// caller an admin of a company on the default plan.
func TestBootstrapProvisionsCompany(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	client := clientFor(t, baseURL, "user-acme")
	companyID := bootstrapCompany(t, client, "Acme")

	me, err := client.Me(t.Context())
	require.NoError(t, err)
	require.NotNil(t, me.CompanyID)
	require.Equal(t, companyID, *me.CompanyID)
	require.Equal(t, "admin", me.Role)
	require.Equal(t, "active", me.Subscription)

	sub, err := client.GetSubscription(t.Context(), companyID)
	require.NoError(t, err)
	require.Equal(t, "active", sub.Status)
	require.Equal(t, int64(0), sub.AmountCents)

	report, err := client.VerifyAudit(t.Context(), companyID)
	require.NoError(t, err)
	require.True(t, report.OK)
	require.Positive(t, report.Records)

	t.Logf("Bootstrap created company %s with %d audit records", companyID, report.Records)
}

// TestBootstrapConcurrentFirstWriteWins fires several bootstraps for one
// principal at once and expects exactly one company.
func TestBootstrapConcurrentFirstWriteWins(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	client := clientFor(t, baseURL, "user-race")

	const attempts = 8
	ids := make([]string, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Bootstrap(t.Context(), tenantsdk.BootstrapRequest{
				Name:  "Race " + string(rune('A'+i)),
				TaxID: acmeTaxID,
			})
			errs[i] = err
			if err == nil {
				ids[i] = resp.CompanyID
			}
		}()
	}
	wg.Wait()

	for i := range attempts {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i], "every bootstrap should return the same company")
	}

	company, err := client.GetCompany(t.Context(), ids[0])
	require.NoError(t, err)
	t.Logf("Concurrent bootstrap settled on %q", company.Name)
}

// TestBootstrapRejectsInvalidInput verifies field level validation errors.
func TestBootstrapRejectsInvalidInput(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	client := clientFor(t, baseURL, "user-invalid")

	_, err := client.Bootstrap(t.Context(), tenantsdk.BootstrapRequest{Name: "", TaxID: "???"})
	require.True(t, tenantsdk.IsValidation(err), "got %v", err)

	var apiErr *tenantsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Details, "name")

	me, err := client.Me(t.Context())
	require.NoError(t, err)
	require.Nil(t, me.CompanyID, "a rejected bootstrap must not leave a company behind")
}
