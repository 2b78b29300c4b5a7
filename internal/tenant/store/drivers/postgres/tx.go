package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/jackc/pgx/v5"
)

type txStore struct {
	ctx context.Context
	tx  pgx.Tx
}

func newTx(ctx context.Context, tx pgx.Tx) *txStore { return &txStore{ctx: ctx, tx: tx} }

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

// Rollback uses a fresh context so a cancelled request still releases its
// connection.
func (t *txStore) Rollback() error { return t.tx.Rollback(context.WithoutCancel(t.ctx)) }

func (t *txStore) Close() error { return nil } // pool stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, pgx.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) Companies() store.Companies         { return &companiesRepo{q: t.tx} }
func (t *txStore) Roles() store.Roles                 { return &rolesRepo{q: t.tx, inTx: true} }
func (t *txStore) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: t.tx} }
func (t *txStore) Profiles() store.Profiles           { return &profilesRepo{q: t.tx} }
func (t *txStore) Audit() store.Audit                 { return &auditRepo{q: t.tx, inTx: true} }
func (t *txStore) Credentials() store.Credentials     { return &credentialsRepo{q: t.tx} }
func (t *txStore) Transactions() store.Transactions   { return &transactionsRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
