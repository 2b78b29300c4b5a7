package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type transactionsRepo struct {
	q querier
}

const transactionColumns = `id, company_id, description, category, amount_cents, cost_cents, profit_cents,
	tax_cents, occurred_at, created_by, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (domain.Transaction, error) {
	var (
		t                     domain.Transaction
		cost, profit, tax     sql.NullInt64
		occurredAt, createdAt string
	)
	err := row.Scan(&t.ID, &t.CompanyID, &t.Description, &t.Category, &t.AmountCents,
		&cost, &profit, &tax, &occurredAt, &t.CreatedBy, &createdAt)
	if err != nil {
		return domain.Transaction{}, mapError(err)
	}
	t.CostCents, t.ProfitCents, t.TaxCents = intPtr(cost), intPtr(profit), intPtr(tax)
	if t.OccurredAt, err = parseTime(occurredAt); err != nil {
		return domain.Transaction{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CompanyID, t.Description, t.Category, t.AmountCents,
		nullInt(t.CostCents), nullInt(t.ProfitCents), nullInt(t.TaxCents),
		fmtTime(t.OccurredAt), t.CreatedBy, fmtTime(t.CreatedAt),
	)
	return mapError(err)
}

func (r *transactionsRepo) GetTransaction(ctx context.Context, companyID, id string) (domain.Transaction, error) {
	return scanTransaction(r.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE company_id = ? AND id = ?`, companyID, id))
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE company_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`, companyID, limit)
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
	return out, rows.Err()
}

func (r *transactionsRepo) DeleteTransaction(ctx context.Context, companyID, id string) error {
	return expectOne(r.q.ExecContext(ctx,
		`DELETE FROM transactions WHERE company_id = ? AND id = ?`, companyID, id))
}
