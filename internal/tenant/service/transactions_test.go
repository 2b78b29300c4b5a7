package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/stretchr/testify/require"
)

func TestTransactionMasking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"fay": domain.RoleFinance, "rita": domain.RoleReadonly})

	created, err := f.Transactions.Create(ctx, "fay", c, domain.TransactionInput{
		Description: "consulting",
		Category:    "services",
		AmountCents: 10000,
		CostCents:   ptr(int64(4000)),
		ProfitCents: ptr(int64(6000)),
		TaxCents:    ptr(int64(900)),
		OccurredAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "fay", created.CreatedBy)

	for _, p := range []string{"alice", "fay"} {
		list, err := f.Transactions.List(ctx, p, c, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].CostCents)
		require.NotNil(t, list[0].ProfitCents)
		require.NotNil(t, list[0].TaxCents)
		require.Equal(t, int64(6000), *list[0].ProfitCents)
	}

	list, err := f.Transactions.List(ctx, "rita", c, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(10000), list[0].AmountCents)
	require.Nil(t, list[0].CostCents)
	require.Nil(t, list[0].ProfitCents)
	require.Nil(t, list[0].TaxCents)

	one, err := f.Transactions.Get(ctx, "rita", c, created.ID)
	require.NoError(t, err)
	require.Nil(t, one.ProfitCents)
}

func TestTransactionWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "alice", map[string]domain.Role{"rita": domain.RoleReadonly})

	_, err := f.Transactions.Create(ctx, "rita", c, domain.TransactionInput{Description: "x", AmountCents: 1})
	require.ErrorIs(t, err, policy.ErrDenied)

	_, err = f.Transactions.Create(ctx, "alice", c, domain.TransactionInput{Description: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	tr, err := f.Transactions.Create(ctx, "alice", c, domain.TransactionInput{Description: "rent", AmountCents: -1500})
	require.NoError(t, err)
	require.False(t, tr.OccurredAt.IsZero())

	require.ErrorIs(t, f.Transactions.Delete(ctx, "rita", c, tr.ID), policy.ErrDenied)
	require.NoError(t, f.Transactions.Delete(ctx, "alice", c, tr.ID))
	require.ErrorIs(t, f.Transactions.Delete(ctx, "alice", c, tr.ID), ErrNotFound)

	records, err := f.Audit.Query(ctx, "alice", c, domain.AuditFilter{Table: domain.TableTransactions})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, domain.AuditDelete, records[0].Action)
	require.Equal(t, domain.AuditInsert, records[1].Action)
}
