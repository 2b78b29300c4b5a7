package policy_test

import (
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMaskTransaction(t *testing.T) {
	t.Parallel()

	tx := domain.Transaction{
		ID:          "tx-1",
		AmountCents: 10_000,
		CostCents:   ptr(int64(6_000)),
		ProfitCents: ptr(int64(4_000)),
		TaxCents:    ptr(int64(900)),
	}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleFinance} {
		got := policy.MaskTransaction(role, tx)
		require.True(t, policy.CanViewFinancials(role))
		require.Equal(t, tx, got, "role %s sees everything", role)
	}

	got := policy.MaskTransaction(domain.RoleReadonly, tx)
	require.False(t, policy.CanViewFinancials(domain.RoleReadonly))
	require.Nil(t, got.CostCents)
	require.Nil(t, got.ProfitCents)
	require.Nil(t, got.TaxCents)
	require.Equal(t, tx.AmountCents, got.AmountCents)
	require.Equal(t, tx.ID, got.ID)

	// Original untouched.
	require.NotNil(t, tx.CostCents)

	require.Nil(t, policy.MaskTransaction("", tx).ProfitCents)
}
