package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuditVerifierService(t *testing.T) {
	f := newFixture(t)
	f.company(t, "alice", nil)

	v := NewAuditVerifierService(f.Audit, slog.New(slog.DiscardHandler), 0)
	require.Equal(t, 6*time.Hour, v.Interval)
	require.Zero(t, v.VerifyOnce(t.Context()))

	v.Start()
	v.Stop()
}
