package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

type CompanyService struct {
	Store store.Store
	Guard *Guard
	Audit *AuditService
}

func (s *CompanyService) Get(ctx context.Context, principal, companyID string) (domain.Company, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapCompanyRead); err != nil {
		return domain.Company{}, err
	}
	c, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, ErrNotFound
	}
	return c, err
}

// Update replaces the company's details. Admins only.
func (s *CompanyService) Update(ctx context.Context, principal, companyID string, in domain.CompanyInput) (domain.Company, error) {
	in, err := normalizeCompanyInput(in)
	if err != nil {
		return domain.Company{}, err
	}

	var updated domain.Company
	err = retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapCompanyUpdate,
			})
			if err != nil {
				return err
			}

			old, err := tx.Companies().GetCompanyByID(ctx, companyID)
			if err != nil {
				return err
			}
			updated = old
			updated.Name = in.Name
			updated.Document = in.TaxID
			updated.Email = in.Email
			updated.Phone = in.Phone
			updated.Address = in.Address
			updated.UpdatedAt = time.Now().UTC()

			if err := tx.Companies().UpdateCompany(ctx, updated); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableCompanies, Action: domain.AuditUpdate, RecordID: companyID,
				Old: snapCompany(old), New: snapCompany(updated),
			})
			return err
		})
	})
	if err != nil {
		return domain.Company{}, err
	}
	return updated, nil
}

// Delete removes the company and everything scoped to it. Members lose
// their home company; the audit chain is kept.
func (s *CompanyService) Delete(ctx context.Context, principal, companyID string) error {
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapCompanyDelete,
			})
			if err != nil {
				return err
			}

			old, err := tx.Companies().GetCompanyByID(ctx, companyID)
			if err != nil {
				return err
			}
			if err := s.auditCascade(ctx, tx, grant, companyID); err != nil {
				return err
			}
			if _, err := s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableCompanies, Action: domain.AuditDelete, RecordID: companyID,
				Old: snapCompany(old),
			}); err != nil {
				return err
			}
			return tx.Companies().DeleteCompany(ctx, companyID)
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("company deleted", slog.String("company_id", companyID))
	return nil
}

// auditCascade records the rows DeleteCompany removes with the company:
// each member's credentials, profile link and role, then the subscription.
// Transactions are business records, not access rows; the company's delete
// record covers them.
func (s *CompanyService) auditCascade(ctx context.Context, tx store.Tx, grant policy.Grant, companyID string) error {
	members, err := tx.Roles().ListAssignmentsByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	for _, m := range members {
		creds, err := tx.Credentials().ListCredentials(ctx, m.PrincipalID, companyID)
		if err != nil {
			return err
		}
		for _, c := range creds {
			if _, err := s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableCredentials, Action: domain.AuditDelete, RecordID: c.ID,
				Old: snapCredential(c),
			}); err != nil {
				return err
			}
		}
		if err := linkProfile(ctx, tx, s.Audit, grant, m.PrincipalID, nil); err != nil {
			return err
		}
		if _, err := s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
			Table: domain.TableRoleAssignments, Action: domain.AuditDelete, RecordID: m.ID,
			Old: snapAssignment(m),
		}); err != nil {
			return err
		}
	}

	sub, err := tx.Subscriptions().GetSubscriptionByCompany(ctx, companyID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
		Table: domain.TableSubscriptions, Action: domain.AuditDelete, RecordID: sub.ID,
		Old: snapSubscription(sub),
	})
	return err
}
