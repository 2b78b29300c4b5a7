package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// MembersService manages role assignments within a company. Every change
// is authorized inside the transaction that makes it, so the admin count
// the last-admin rule sees is the one that commits.
type MembersService struct {
	Store store.Store
	Guard *Guard
	Audit *AuditService
}

func (s *MembersService) List(ctx context.Context, principal, companyID string) ([]domain.RoleAssignment, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapMembersRead); err != nil {
		return nil, err
	}
	members, err := s.Store.Roles().ListAssignmentsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.RoleAssignment{}
	}
	return members, nil
}

// Add gives target a role in the company. A target that already belongs to
// any company is refused with ErrPrincipalHasCompany.
func (s *MembersService) Add(ctx context.Context, principal, companyID, target string, role domain.Role) (domain.RoleAssignment, error) {
	if target == "" {
		return domain.RoleAssignment{}, invalid("principal_id", "is required")
	}
	if !role.Valid() {
		return domain.RoleAssignment{}, invalid("role", "must be admin, finance or readonly")
	}

	var a domain.RoleAssignment
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapRolesManage,
			})
			if err != nil {
				return err
			}

			if _, err := tx.Roles().GetAssignmentByPrincipal(ctx, target); err == nil {
				return ErrPrincipalHasCompany
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			now := time.Now().UTC()
			a = domain.RoleAssignment{
				ID:          idx.New().String(),
				PrincipalID: target,
				CompanyID:   companyID,
				Role:        role,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Roles().CreateAssignment(ctx, a); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					return ErrPrincipalHasCompany
				}
				return err
			}
			if err := linkProfile(ctx, tx, s.Audit, grant, target, &companyID); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableRoleAssignments, Action: domain.AuditInsert, RecordID: a.ID,
				New: snapAssignment(a),
			})
			return err
		})
	})
	if err != nil {
		return domain.RoleAssignment{}, err
	}

	slogx.FromContext(ctx).Info("member added",
		slog.String("company_id", companyID),
		slog.String("member", target),
		slog.String("role", string(role)),
	)
	return a, nil
}

// ChangeRole sets target's role. Changing to the current role is a no-op
// and writes no audit record.
func (s *MembersService) ChangeRole(ctx context.Context, principal, companyID, target string, role domain.Role) (domain.RoleAssignment, error) {
	if !role.Valid() {
		return domain.RoleAssignment{}, invalid("role", "must be admin, finance or readonly")
	}

	var updated domain.RoleAssignment
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapRolesManage,
				Target: &policy.RoleChange{Principal: target, NewRole: role},
			})
			if err != nil {
				return err
			}

			old, err := memberOf(ctx, tx, companyID, target)
			if err != nil {
				return err
			}
			updated = old
			if old.Role == role {
				return nil
			}

			updated.Role = role
			updated.UpdatedAt = time.Now().UTC()
			if err := tx.Roles().UpdateAssignmentRole(ctx, companyID, target, role); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableRoleAssignments, Action: domain.AuditUpdate, RecordID: old.ID,
				Old: snapAssignment(old), New: snapAssignment(updated),
			})
			return err
		})
	})
	if err != nil {
		return domain.RoleAssignment{}, err
	}
	return updated, nil
}

// Remove drops target from the company together with the credentials they
// stored there, and clears their profile link.
func (s *MembersService) Remove(ctx context.Context, principal, companyID, target string) error {
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapRolesManage,
				Target: &policy.RoleChange{Principal: target, Remove: true},
			})
			if err != nil {
				return err
			}

			old, err := memberOf(ctx, tx, companyID, target)
			if err != nil {
				return err
			}

			creds, err := tx.Credentials().ListCredentials(ctx, target, companyID)
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
			if err := tx.Credentials().DeleteCredentialsForPrincipal(ctx, target, companyID); err != nil {
				return err
			}

			if err := tx.Roles().DeleteAssignment(ctx, companyID, target); err != nil {
				return err
			}
			if err := linkProfile(ctx, tx, s.Audit, grant, target, nil); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableRoleAssignments, Action: domain.AuditDelete, RecordID: old.ID,
				Old: snapAssignment(old),
			})
			return err
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("member removed",
		slog.String("company_id", companyID),
		slog.String("member", target),
	)
	return nil
}

// memberOf returns target's assignment if it is in companyID. Members of
// other companies are reported as not found.
func memberOf(ctx context.Context, q store.Store, companyID, target string) (domain.RoleAssignment, error) {
	a, err := q.Roles().GetAssignmentByPrincipal(ctx, target)
	if errors.Is(err, store.ErrNotFound) || (err == nil && a.CompanyID != companyID) {
		return domain.RoleAssignment{}, ErrNotFound
	}
	return a, err
}

// linkProfile points the principal's profile at companyID (nil to unlink)
// and audits the change.
func linkProfile(ctx context.Context, tx store.Tx, audit *AuditService, grant policy.Grant, principal string, companyID *string) error {
	entry := domain.AuditEntry{Table: domain.TableProfiles, Action: domain.AuditInsert, RecordID: principal}
	if p, err := tx.Profiles().GetProfile(ctx, principal); err == nil {
		entry.Action = domain.AuditUpdate
		entry.Old = snapProfile(p)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	p := domain.Profile{PrincipalID: principal, CompanyID: companyID, UpdatedAt: time.Now().UTC()}
	if err := tx.Profiles().UpsertProfile(ctx, p); err != nil {
		return err
	}
	entry.New = snapProfile(p)
	_, err := audit.Record(ctx, tx, grant, entry)
	return err
}
