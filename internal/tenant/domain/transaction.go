package domain

import "time"

// Transaction is a financial record owned by a company. Cost, profit and tax
// are the restricted sub-fields; they are nil once masked.
type Transaction struct {
	ID          string
	CompanyID   string
	Description string
	Category    string
	AmountCents int64
	CostCents   *int64
	ProfitCents *int64
	TaxCents    *int64
	OccurredAt  time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

type TransactionInput struct {
	Description string
	Category    string
	AmountCents int64
	CostCents   *int64
	ProfitCents *int64
	TaxCents    *int64
	OccurredAt  time.Time
}
