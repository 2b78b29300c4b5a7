package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, store.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "role_assignments_principal_key"}, store.ErrAlreadyExists},
		{"serialization", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, store.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, store.ErrConflict},
		{"lock not available", &pgconn.PgError{Code: pgerrcode.LockNotAvailable}, store.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, store.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in), tt.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapError(nil))
	})

	t.Run("other server error keeps the cause", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrcode.RaiseException, Message: "audit_log is append-only"}
		err := mapError(pgErr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "append-only")
		var got *pgconn.PgError
		assert.True(t, errors.As(err, &got))
	})

	t.Run("plain error passes through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, mapError(plain))
	})
}

func TestPoolConfigDefaults(t *testing.T) {
	cfg := PoolConfig{ConnString: "postgres://localhost/tally"}
	cfg.ApplyDefaults()

	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.NoError(t, cfg.Validate())

	custom := PoolConfig{ConnString: "x", MaxConns: 5}
	custom.ApplyDefaults()
	assert.Equal(t, int32(5), custom.MaxConns)
}

func TestPoolConfigValidate(t *testing.T) {
	var cfg PoolConfig
	assert.Error(t, cfg.Validate())
}
