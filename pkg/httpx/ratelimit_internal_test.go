package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterTableEvictsIdleBuckets(t *testing.T) {
	table := newLimiterTable(RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10})

	start := time.Now()
	table.get("a", start)
	table.get("b", start)
	require.Equal(t, 2, table.size())

	later := start.Add(idleEviction + time.Minute)
	table.get("c", later)
	require.Equal(t, 1, table.size())
}
