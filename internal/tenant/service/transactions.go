package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

const (
	DefaultTransactionPage = 50
	MaxTransactionPage     = 500
)

// TransactionService is the domain data path for financial records. Reads
// apply field masking on top of the row-level check.
type TransactionService struct {
	Store store.Store
	Guard *Guard
	Audit *AuditService
}

func (s *TransactionService) List(ctx context.Context, principal, companyID string, limit int) ([]domain.Transaction, error) {
	_, role, err := s.Guard.access(ctx, s.Store, policy.Request{
		Principal: principal, CompanyID: companyID, Capability: policy.CapRecordsRead,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultTransactionPage
	case limit > MaxTransactionPage:
		limit = MaxTransactionPage
	}
	rows, err := s.Store.Transactions().ListTransactions(ctx, companyID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(rows))
	for _, t := range rows {
		out = append(out, policy.MaskTransaction(role, t))
	}
	return out, nil
}

func (s *TransactionService) Get(ctx context.Context, principal, companyID, id string) (domain.Transaction, error) {
	_, role, err := s.Guard.access(ctx, s.Store, policy.Request{
		Principal: principal, CompanyID: companyID, Capability: policy.CapRecordsRead,
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	t, err := s.Store.Transactions().GetTransaction(ctx, companyID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Transaction{}, ErrNotFound
	}
	if err != nil {
		return domain.Transaction{}, err
	}
	return policy.MaskTransaction(role, t), nil
}

func (s *TransactionService) Create(ctx context.Context, principal, companyID string, in domain.TransactionInput) (domain.Transaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case in.Description == "":
		return domain.Transaction{}, invalid("description", "is required")
	case utf8.RuneCountInString(in.Description) > maxDescription:
		return domain.Transaction{}, invalid("description", "is too long")
	case utf8.RuneCountInString(in.Category) > maxCategory:
		return domain.Transaction{}, invalid("category", "is too long")
	}

	var t domain.Transaction
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapRecordsWrite,
			})
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			occurred := in.OccurredAt
			if occurred.IsZero() {
				occurred = now
			}
			t = domain.Transaction{
				ID:          idx.New().String(),
				CompanyID:   companyID,
				Description: in.Description,
				Category:    in.Category,
				AmountCents: in.AmountCents,
				CostCents:   in.CostCents,
				ProfitCents: in.ProfitCents,
				TaxCents:    in.TaxCents,
				OccurredAt:  occurred.UTC(),
				CreatedBy:   principal,
				CreatedAt:   now,
			}
			if err := tx.Transactions().CreateTransaction(ctx, t); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableTransactions, Action: domain.AuditInsert, RecordID: t.ID,
				New: snapTransaction(t),
			})
			return err
		})
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, principal, companyID, id string) error {
	return retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapRecordsWrite,
			})
			if err != nil {
				return err
			}
			old, err := tx.Transactions().GetTransaction(ctx, companyID, id)
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := tx.Transactions().DeleteTransaction(ctx, companyID, id); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableTransactions, Action: domain.AuditDelete, RecordID: id,
				Old: snapTransaction(old),
			})
			return err
		})
	})
}
