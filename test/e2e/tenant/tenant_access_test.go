//go:build e2e

package tenant_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
	"github.com/stretchr/testify/require"
)

// TestTenantIsolation verifies one tenant's principal cannot see another's data.
func TestTenantIsolation(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	alice := clientFor(t, baseURL, "alice")
	mallory := clientFor(t, baseURL, "mallory")

	acmeID := bootstrapCompany(t, alice, "Acme")
	bootstrapCompany(t, mallory, "Mallory Ltd")

	_, err := mallory.GetCompany(t.Context(), acmeID)
	require.True(t, tenantsdk.IsForbidden(err), "got %v", err)

	_, err = mallory.ListTransactions(t.Context(), acmeID, 0)
	require.True(t, tenantsdk.IsForbidden(err), "got %v", err)

	decision, err := mallory.Authorize(t.Context(), acmeID, "records:read")
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, "not a member", decision.Reason)
}

// TestSubscriptionGate verifies a suspended company loses domain access until
// billing reactivates it.
func TestSubscriptionGate(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	alice := clientFor(t, baseURL, "alice")
	billing := tenantsdk.NewClient(baseURL, "")
	companyID := bootstrapCompany(t, alice, "Acme")

	_, err := billing.ApplyBillingEvent(t.Context(), "not-the-token", tenantsdk.BillingEventRequest{
		CompanyID: companyID,
		Status:    "suspended",
	})
	var apiErr *tenantsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = billing.ApplyBillingEvent(t.Context(), billingToken, tenantsdk.BillingEventRequest{
		CompanyID: companyID,
		Status:    "suspended",
	})
	require.NoError(t, err)

	_, err = alice.CreateTransaction(t.Context(), companyID, tenantsdk.TransactionRequest{
		Description: "Office chairs",
		AmountCents: -45000,
	})
	require.True(t, tenantsdk.IsSubscriptionInactive(err), "got %v", err)

	_, err = billing.ApplyBillingEvent(t.Context(), billingToken, tenantsdk.BillingEventRequest{
		CompanyID: companyID,
		Status:    "active",
	})
	require.NoError(t, err)

	tx, err := alice.CreateTransaction(t.Context(), companyID, tenantsdk.TransactionRequest{
		Description: "Office chairs",
		AmountCents: -45000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)
}

// TestLastAdminProtection verifies the only admin cannot leave the company
// without an admin.
func TestLastAdminProtection(t *testing.T) {
	baseURL, cleanup := setupTenantContainer(t)
	defer cleanup()

	alice := clientFor(t, baseURL, "alice")
	companyID := bootstrapCompany(t, alice, "Acme")

	_, err := alice.ChangeMemberRole(t.Context(), companyID, "alice", "readonly")
	require.True(t, tenantsdk.IsLastAdmin(err), "got %v", err)

	err = alice.RemoveMember(t.Context(), companyID, "alice")
	require.True(t, tenantsdk.IsLastAdmin(err), "got %v", err)

	_, err = alice.AddMember(t.Context(), companyID, "bob", "admin")
	require.NoError(t, err)

	// With a second admin the first may step down.
	m, err := alice.ChangeMemberRole(t.Context(), companyID, "alice", "finance")
	require.NoError(t, err)
	require.Equal(t, "finance", m.Role)
}
