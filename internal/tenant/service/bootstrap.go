package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// BootstrapService provisions a company for a principal that has none. It
// is the one write that runs without a role, so it enforces its own
// precondition instead of asking the policy engine.
type BootstrapService struct {
	Store     store.Store
	Directory *DirectoryService
	Audit     *AuditService
	Metrics   *metrics.Collector
}

// Bootstrap creates a company, the caller's admin role, an active default
// subscription and the profile link, all or nothing. Repeated and
// concurrent calls for one principal return the first company created; the
// input of later calls is ignored.
func (s *BootstrapService) Bootstrap(ctx context.Context, principal string, in domain.CompanyInput) (string, error) {
	l := slogx.FromContext(ctx)

	if principal == "" {
		return "", invalid("principal", "is required")
	}

	// Fast path. The transaction re-checks; this only saves a write lock.
	if companyID, ok, err := s.Directory.ResolveHomeCompany(ctx, principal); err != nil {
		return "", err
	} else if ok {
		s.Metrics.ObserveBootstrap(metrics.BootstrapExisting)
		return companyID, nil
	}

	in, err := normalizeCompanyInput(in)
	if err != nil {
		return "", err
	}

	var (
		companyID string
		created   bool
	)
	err = retryConflicts(ctx, func() error {
		var err error
		companyID, created, err = s.provision(ctx, principal, in)
		return err
	})

	if errors.Is(err, store.ErrAlreadyExists) {
		// A concurrent call committed the principal's assignment first.
		// The unique index decided; adopt its company.
		winner, ok, rerr := s.Directory.ResolveHomeCompany(ctx, principal)
		if rerr == nil && ok {
			s.Metrics.ObserveBootstrap(metrics.BootstrapExisting)
			l.Info("bootstrap converged on existing company", slog.String("company_id", winner))
			return winner, nil
		}
		if rerr != nil {
			err = rerr
		}
	}
	if err != nil {
		s.Metrics.ObserveBootstrap(metrics.BootstrapFailed)
		l.Error("bootstrap failed", slog.Any("error", err))
		return "", err
	}

	if !created {
		s.Metrics.ObserveBootstrap(metrics.BootstrapExisting)
		return companyID, nil
	}

	s.Metrics.ObserveBootstrap(metrics.BootstrapCreated)
	l.Info("bootstrapped company", slog.String("company_id", companyID))
	return companyID, nil
}

func (s *BootstrapService) provision(ctx context.Context, principal string, in domain.CompanyInput) (string, bool, error) {
	var (
		companyID string
		created   bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Roles().GetAssignmentByPrincipal(ctx, principal)
		if err == nil {
			companyID = existing.CompanyID
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		company := domain.Company{
			ID:        idx.New().String(),
			Name:      in.Name,
			Document:  in.TaxID,
			Email:     in.Email,
			Phone:     in.Phone,
			Address:   in.Address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		assignment := domain.RoleAssignment{
			ID:          idx.New().String(),
			PrincipalID: principal,
			CompanyID:   company.ID,
			Role:        domain.RoleAdmin,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		sub := domain.Subscription{
			ID:          idx.New().String(),
			CompanyID:   company.ID,
			Status:      domain.SubscriptionActive,
			Plan:        domain.DefaultPlan,
			AmountCents: 0,
			ActivatedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := tx.Companies().CreateCompany(ctx, company); err != nil {
			return err
		}
		if err := tx.Roles().CreateAssignment(ctx, assignment); err != nil {
			return err
		}
		if err := tx.Subscriptions().CreateSubscription(ctx, sub); err != nil {
			return err
		}

		grant := policy.SystemGrant(company.ID, principal)
		for _, e := range []domain.AuditEntry{
			{Table: domain.TableCompanies, Action: domain.AuditInsert, RecordID: company.ID, New: snapCompany(company)},
			{Table: domain.TableRoleAssignments, Action: domain.AuditInsert, RecordID: assignment.ID, New: snapAssignment(assignment)},
			{Table: domain.TableSubscriptions, Action: domain.AuditInsert, RecordID: sub.ID, New: snapSubscription(sub)},
		} {
			if _, err := s.Audit.Record(ctx, tx, grant, e); err != nil {
				return err
			}
		}
		if err := linkProfile(ctx, tx, s.Audit, grant, principal, &company.ID); err != nil {
			return err
		}

		companyID = company.ID
		created = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return companyID, created, nil
}
