package ledger_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, company string, n int) []domain.AuditRecord {
	t.Helper()

	var out []domain.AuditRecord
	var prev *domain.AuditRecord
	base := time.Date(2026, 3, 1, 9, 0, 0, 123456789, time.UTC)

	for i := range n {
		rec := domain.AuditRecord{
			ID:          fmt.Sprintf("audit-%d", i),
			CompanyID:   company,
			PrincipalID: "alice",
			Table:       domain.TableTransactions,
			Action:      domain.AuditInsert,
			RecordID:    fmt.Sprintf("tx-%d", i),
			NewSnapshot: json.RawMessage(fmt.Sprintf(`{"amount_cents":%d}`, i*100)),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, ledger.Link(prev, &rec))
		out = append(out, rec)
		prev = &out[len(out)-1]
	}
	return out
}

func TestLink(t *testing.T) {
	chain := buildChain(t, "c1", 3)

	require.EqualValues(t, 1, chain[0].Seq)
	require.Equal(t, ledger.Genesis, chain[0].PrevHash)
	require.Len(t, chain[0].Hash, ledger.HashSize)

	require.EqualValues(t, 2, chain[1].Seq)
	require.Equal(t, chain[0].Hash, chain[1].PrevHash)
	require.Equal(t, chain[1].Hash, chain[2].PrevHash)

	require.Zero(t, chain[0].CreatedAt.Nanosecond()%1000, "timestamps are truncated to micros")
}

func TestLink_RejectsCrossCompany(t *testing.T) {
	chain := buildChain(t, "c1", 1)
	rec := domain.AuditRecord{ID: "x", CompanyID: "c2"}
	require.ErrorIs(t, ledger.Link(&chain[0], &rec), ledger.ErrBadLink)
}

func TestDigestIsDeterministic(t *testing.T) {
	chain := buildChain(t, "c1", 1)

	a, err := ledger.Digest(chain[0])
	require.NoError(t, err)
	b, err := ledger.Digest(chain[0])
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, chain[0].Hash, a)

	// Local time zone must not change the digest.
	moved := chain[0]
	moved.CreatedAt = moved.CreatedAt.In(time.FixedZone("AEST", 10*3600))
	c, err := ledger.Digest(moved)
	require.NoError(t, err)
	require.Equal(t, a, c)
}

func TestVerify(t *testing.T) {
	t.Run("intact", func(t *testing.T) {
		rep := ledger.Verify("c1", buildChain(t, "c1", 5))
		require.True(t, rep.OK)
		require.Nil(t, rep.Break)
		require.Equal(t, 5, rep.Records)
		require.EqualValues(t, 5, rep.HeadSeq)
	})

	t.Run("empty", func(t *testing.T) {
		rep := ledger.Verify("c1", nil)
		require.True(t, rep.OK)
		require.Zero(t, rep.HeadSeq)
	})

	tamper := []struct {
		name   string
		mutate func([]domain.AuditRecord) []domain.AuditRecord
		seq    int64
	}{
		{"edited snapshot", func(c []domain.AuditRecord) []domain.AuditRecord {
			c[2].NewSnapshot = json.RawMessage(`{"amount_cents":999999}`)
			return c
		}, 3},
		{"edited actor", func(c []domain.AuditRecord) []domain.AuditRecord {
			c[1].PrincipalID = "mallory"
			return c
		}, 2},
		{"removed row", func(c []domain.AuditRecord) []domain.AuditRecord {
			return append(c[:2], c[3:]...)
		}, 4},
		{"swapped rows", func(c []domain.AuditRecord) []domain.AuditRecord {
			c[1], c[2] = c[2], c[1]
			return c
		}, 3},
		{"rehashed without relinking", func(c []domain.AuditRecord) []domain.AuditRecord {
			c[1].RecordID = "forged"
			sum, _ := ledger.Digest(c[1])
			c[1].Hash = sum
			return c
		}, 3},
	}

	for _, tt := range tamper {
		t.Run(tt.name, func(t *testing.T) {
			rep := ledger.Verify("c1", tt.mutate(buildChain(t, "c1", 5)))
			require.False(t, rep.OK)
			require.NotNil(t, rep.Break)
			require.Equal(t, tt.seq, rep.Break.Seq)
		})
	}

	t.Run("foreign record", func(t *testing.T) {
		chain := buildChain(t, "c1", 2)
		chain[1].CompanyID = "c2"
		rep := ledger.Verify("c1", chain)
		require.False(t, rep.OK)
	})
}
