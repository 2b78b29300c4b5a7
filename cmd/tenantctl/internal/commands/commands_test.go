package commands

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/internal/tenant/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestTokenMint(t *testing.T) {
	t.Parallel()

	cmd := &TokenMintCmd{
		Subject:  "user-1",
		TTL:      time.Hour,
		Issuer:   "https://id.tally.test",
		Audience: []string{"tally-api"},
		Secret:   "mint-secret-0123456789abcdef",
	}

	token, err := cmd.mint(time.Now())
	require.NoError(t, err)

	v, err := jwtx.NewVerifierHS256([]byte(cmd.Secret), jwtx.VerifyOptions{
		Issuer:   cmd.Issuer,
		Audience: cmd.Audience,
	})
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestTokenMintRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := (&TokenMintCmd{Subject: "user-1", TTL: time.Hour}).mint(time.Now())
	require.Error(t, err)
}

func TestBillingEvent(t *testing.T) {
	t.Parallel()

	t.Run("unset options are omitted", func(t *testing.T) {
		ev := (&BillingSetStatusCmd{CompanyID: "c1", Status: "suspended", AmountCents: -1}).event()
		require.Equal(t, "c1", ev.CompanyID)
		require.Equal(t, "suspended", ev.Status)
		require.Nil(t, ev.Plan)
		require.Nil(t, ev.AmountCents)
		require.Nil(t, ev.RenewsAt)
	})

	t.Run("set options are sent", func(t *testing.T) {
		renews := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
		ev := (&BillingSetStatusCmd{
			CompanyID:   "c1",
			Status:      "active",
			Plan:        "pro",
			AmountCents: 0,
			RenewsAt:    renews,
		}).event()
		require.Equal(t, "pro", *ev.Plan)
		require.Equal(t, int64(0), *ev.AmountCents)
		require.True(t, renews.Equal(*ev.RenewsAt))
	})
}

func TestPrintReports(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printReports(&buf, []ledger.Report{
		{CompanyID: "c1", Records: 4, HeadSeq: 4, OK: true},
		{CompanyID: "c2", Records: 2, HeadSeq: 2, Break: &ledger.Break{Seq: 2, Reason: "hash mismatch"}},
	})
	require.ErrorIs(t, err, ErrChainBroken)
	require.Contains(t, buf.String(), "BROKEN at seq 2: hash mismatch")

	buf.Reset()
	require.NoError(t, printReports(&buf, filterReports([]ledger.Report{
		{CompanyID: "c1", OK: true},
		{CompanyID: "c2", Break: &ledger.Break{Seq: 1, Reason: "x"}},
	}, "c1")))
	require.NotContains(t, buf.String(), "c2")
}

func TestFormatFieldErrors(t *testing.T) {
	t.Parallel()

	got := formatFieldErrors(map[string]string{"tax_id": "invalid format", "name": "required"})
	require.Equal(t, "name: required, tax_id: invalid format", got)
}

func TestMigrateThenVerify(t *testing.T) {
	t.Parallel()

	db := DatabaseFlags{Driver: "sqlite", File: filepath.Join(t.TempDir(), "tenant.db")}
	globals := &Globals{Version: "test"}

	require.NoError(t, (&MigrateCmd{DatabaseFlags: db}).Run(t.Context(), globals))
	// Migrating twice is a no-op.
	require.NoError(t, (&MigrateCmd{DatabaseFlags: db}).Run(t.Context(), globals))

	st, err := sqlite.NewStore(db.File)
	require.NoError(t, err)
	vault, err := cryptox.NewVault([]byte("vault-master-secret-for-tests"))
	require.NoError(t, err)

	_, err = service.New(st, vault, nil).Bootstrap.Bootstrap(t.Context(), "user-1", domain.CompanyInput{
		Name:  "Acme",
		TaxID: "12.345.678/0001-90",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	require.NoError(t, (&AuditVerifyCmd{DatabaseFlags: db}).Run(t.Context(), globals))
}
