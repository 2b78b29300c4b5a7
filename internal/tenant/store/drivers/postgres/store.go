package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the PostgreSQL driver. It does not own the pool unless built
// with Open.
type Store struct {
	pool  *pgxpool.Pool
	owned bool
}

// NewStore wraps an existing pool. Close leaves the pool open.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open creates a pool from cfg and returns a Store that closes it.
func Open(ctx context.Context, cfg PoolConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, owned: true}, nil
}

func (s *Store) Close() error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Tx starts a READ COMMITTED transaction. Repos that need stronger
// guarantees take row or advisory locks themselves.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	return newTx(ctx, tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return mapError(tx.Commit())
}

func (s *Store) Companies() store.Companies         { return &companiesRepo{q: s.pool} }
func (s *Store) Roles() store.Roles                 { return &rolesRepo{q: s.pool} }
func (s *Store) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: s.pool} }
func (s *Store) Profiles() store.Profiles           { return &profilesRepo{q: s.pool} }
func (s *Store) Audit() store.Audit                 { return &auditRepo{q: s.pool} }
func (s *Store) Credentials() store.Credentials     { return &credentialsRepo{q: s.pool} }
func (s *Store) Transactions() store.Transactions   { return &transactionsRepo{q: s.pool} }

// pgx hands timestamptz back in the local zone.
func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func now() time.Time { return time.Now().UTC() }
