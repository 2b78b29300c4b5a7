package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// MaxAuditPage caps a single audit query.
const MaxAuditPage = 500

// AuditService is the ledger. Record is its only write path; there is no
// way to change or remove a record once written.
type AuditService struct {
	Store   store.Store
	Guard   *Guard
	Metrics *metrics.Collector
}

// Record appends entry to the grant's company chain inside tx and returns
// the new record id. A failed Record must fail the enclosing mutation.
func (s *AuditService) Record(ctx context.Context, tx store.Tx, grant policy.Grant, e domain.AuditEntry) (string, error) {
	if !grant.Valid() {
		return "", ErrNoGrant
	}
	if e.Table == "" || e.RecordID == "" {
		return "", fmt.Errorf("audit: table and record id are required")
	}
	switch e.Action {
	case domain.AuditInsert, domain.AuditUpdate, domain.AuditDelete:
	default:
		return "", fmt.Errorf("audit: unknown action %q", e.Action)
	}

	oldSnap, err := marshalSnapshot(e.Old)
	if err != nil {
		return "", err
	}
	newSnap, err := marshalSnapshot(e.New)
	if err != nil {
		return "", err
	}

	var prev *domain.AuditRecord
	last, err := tx.Audit().LastAudit(ctx, grant.CompanyID())
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return "", err
	default:
		prev = &last
	}

	rec := domain.AuditRecord{
		ID:          idx.New().String(),
		CompanyID:   grant.CompanyID(),
		PrincipalID: grant.Principal(),
		Table:       e.Table,
		Action:      e.Action,
		RecordID:    e.RecordID,
		OldSnapshot: oldSnap,
		NewSnapshot: newSnap,
		CreatedAt:   time.Now(),
	}
	if err := ledger.Link(prev, &rec); err != nil {
		return "", err
	}
	if err := tx.Audit().AppendAudit(ctx, rec); err != nil {
		slogx.FromContext(ctx).Error("failed to append audit record",
			slog.String("company_id", rec.CompanyID),
			slog.String("table", rec.Table),
			slog.Any("error", err),
		)
		return "", err
	}

	s.Metrics.ObserveAuditRecord(rec.Table, string(rec.Action))
	return rec.ID, nil
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("audit: encode snapshot: %w", err)
	}
	return b, nil
}

// Query returns a page of the company's audit history, newest first.
func (s *AuditService) Query(ctx context.Context, principal, companyID string, f domain.AuditFilter) ([]domain.AuditRecord, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapAuditRead); err != nil {
		return nil, err
	}
	if f.Limit > MaxAuditPage {
		f.Limit = MaxAuditPage
	}
	if f.Limit < 0 || f.BeforeSeq < 0 {
		return nil, invalid("limit", "must not be negative")
	}
	records, err := s.Store.Audit().ListAudit(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return records, nil
}

// Verify replays the company's chain.
func (s *AuditService) Verify(ctx context.Context, principal, companyID string) (ledger.Report, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapAuditRead); err != nil {
		return ledger.Report{}, err
	}
	return s.verify(ctx, companyID)
}

// VerifyAll replays every chain, including those of deleted companies. It
// is an operator action and is not authorized per principal.
func (s *AuditService) VerifyAll(ctx context.Context) ([]ledger.Report, error) {
	ids, err := s.Store.Audit().ListAuditCompanies(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]ledger.Report, 0, len(ids))
	for _, id := range ids {
		rep, err := s.verify(ctx, id)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (s *AuditService) verify(ctx context.Context, companyID string) (ledger.Report, error) {
	records, err := s.Store.Audit().ListAllAudit(ctx, companyID)
	if err != nil {
		return ledger.Report{}, err
	}
	rep := ledger.Verify(companyID, records)
	s.Metrics.ObserveVerification(rep.OK)
	if !rep.OK {
		slogx.FromContext(ctx).Error("audit chain broken",
			slog.String("company_id", companyID),
			slog.Int64("seq", rep.Break.Seq),
			slog.String("reason", rep.Break.Reason),
		)
	}
	return rep, nil
}
