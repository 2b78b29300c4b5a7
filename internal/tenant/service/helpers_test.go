package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/internal/tenant/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var acme = domain.CompanyInput{Name: "Acme", TaxID: "12.345.678/0001-90"}

type fixture struct {
	*Services
	store   *sqlite.Store
	metrics *metrics.Collector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newSQLiteStore(t)
	m := metrics.New()
	return &fixture{Services: New(st, newVault(t), m), store: st, metrics: m}
}

// newHookedFixture is newFixture with the services writing through h, so a
// test can interfere with a transaction at a chosen repository call. The
// fixture's store field still reads the database directly.
func newHookedFixture(t *testing.T) (*fixture, *hookStore) {
	t.Helper()
	st := newSQLiteStore(t)
	h := &hookStore{Store: st}
	m := metrics.New()
	return &fixture{Services: New(h, newVault(t), m), store: st, metrics: m}, h
}

func newSQLiteStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "tenant.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newVault(t *testing.T) *cryptox.Vault {
	t.Helper()
	vault, err := cryptox.NewVault([]byte("test-master-secret-0123456789abcdef"))
	require.NoError(t, err)
	return vault
}

// company bootstraps a company for admin and adds the other members.
func (f *fixture) company(t *testing.T, admin string, members map[string]domain.Role) string {
	t.Helper()
	ctx := context.Background()

	companyID, err := f.Bootstrap.Bootstrap(ctx, admin, acme)
	require.NoError(t, err)
	for p, role := range members {
		_, err := f.Members.Add(ctx, admin, companyID, p, role)
		require.NoError(t, err)
	}
	return companyID
}

func (f *fixture) setStatus(t *testing.T, companyID string, status domain.SubscriptionStatus) {
	t.Helper()
	_, err := f.Subscriptions.ApplyBillingEvent(context.Background(), domain.BillingEvent{CompanyID: companyID, Status: status})
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

// hookStore runs test callbacks inside transactions. Unset hooks pass
// through.
type hookStore struct {
	store.Store

	// beforeCountAdmins runs on the transaction just before CountAdmins.
	beforeCountAdmins func(ctx context.Context, tx store.Tx)

	// appendAudit replaces AppendAudit when it returns a non-nil error.
	appendAudit func(r domain.AuditRecord) error
}

func (h *hookStore) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := h.Store.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &hookTx{baseTx: tx, h: h}, nil
}

func (h *hookStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := h.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// baseTx names the embedded store.Tx so the field does not shadow the
// promoted Tx method from store.Store.
type baseTx = store.Tx

type hookTx struct {
	baseTx
	h *hookStore
}

func (t *hookTx) Roles() store.Roles { return &hookRoles{Roles: t.baseTx.Roles(), tx: t} }
func (t *hookTx) Audit() store.Audit { return &hookAudit{Audit: t.baseTx.Audit(), h: t.h} }

type hookRoles struct {
	store.Roles
	tx *hookTx
}

func (r *hookRoles) CountAdmins(ctx context.Context, companyID string) (int, error) {
	if fn := r.tx.h.beforeCountAdmins; fn != nil {
		fn(ctx, r.tx.baseTx)
	}
	return r.Roles.CountAdmins(ctx, companyID)
}

type hookAudit struct {
	store.Audit
	h *hookStore
}

func (a *hookAudit) AppendAudit(ctx context.Context, r domain.AuditRecord) error {
	if fn := a.h.appendAudit; fn != nil {
		if err := fn(r); err != nil {
			return err
		}
	}
	return a.Audit.AppendAudit(ctx, r)
}
