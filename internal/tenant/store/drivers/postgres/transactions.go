package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/jackc/pgx/v5"
)

type transactionsRepo struct {
	q querier
}

const transactionColumns = `id, company_id, description, category, amount_cents, cost_cents, profit_cents,
	tax_cents, occurred_at, created_by, created_at`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.CompanyID, &t.Description, &t.Category, &t.AmountCents,
		&t.CostCents, &t.ProfitCents, &t.TaxCents, &t.OccurredAt, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return domain.Transaction{}, mapError(err)
	}
	t.OccurredAt, t.CreatedAt = utc(t.OccurredAt), utc(t.CreatedAt)
	return t, nil
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.CompanyID, t.Description, t.Category, t.AmountCents,
		t.CostCents, t.ProfitCents, t.TaxCents, t.OccurredAt, t.CreatedBy, t.CreatedAt,
	)
	return mapError(err)
}

func (r *transactionsRepo) GetTransaction(ctx context.Context, companyID, id string) (domain.Transaction, error) {
	return scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id))
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE company_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, mapError(rows.Err())
}

func (r *transactionsRepo) DeleteTransaction(ctx context.Context, companyID, id string) error {
	return expectOne(r.q.Exec(ctx,
		`DELETE FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id))
}
