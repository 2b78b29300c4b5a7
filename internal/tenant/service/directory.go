package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
)

// DirectoryService answers which company a principal belongs to. The role
// assignment is the source of truth; the profile link is a convenience copy.
type DirectoryService struct {
	Store store.Store
}

// ResolveHomeCompany returns ok=false, not an error, for a principal with
// no company.
func (s *DirectoryService) ResolveHomeCompany(ctx context.Context, principal string) (string, bool, error) {
	a, err := s.Membership(ctx, principal)
	if errors.Is(err, ErrTenantNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return a.CompanyID, true, nil
}

// HasAnyRole is the bootstrap precondition.
func (s *DirectoryService) HasAnyRole(ctx context.Context, principal string) (bool, error) {
	_, ok, err := s.ResolveHomeCompany(ctx, principal)
	return ok, err
}

// Membership returns the principal's assignment or ErrTenantNotFound.
func (s *DirectoryService) Membership(ctx context.Context, principal string) (domain.RoleAssignment, error) {
	if principal == "" {
		return domain.RoleAssignment{}, ErrTenantNotFound
	}
	a, err := s.Store.Roles().GetAssignmentByPrincipal(ctx, principal)
	if errors.Is(err, store.ErrNotFound) {
		return domain.RoleAssignment{}, ErrTenantNotFound
	}
	return a, err
}

// Me is what a principal may know about themselves.
type Me struct {
	PrincipalID  string                    `json:"principal_id"`
	CompanyID    *string                   `json:"company_id"`
	Role         domain.Role               `json:"role,omitempty"`
	Subscription domain.SubscriptionStatus `json:"subscription,omitempty"`
	Capabilities []policy.Capability       `json:"capabilities"`
}

// Me lists the capabilities the principal currently holds, with the
// subscription gate applied. A principal without a company gets an empty
// view rather than an error.
func (s *DirectoryService) Me(ctx context.Context, principal string) (Me, error) {
	me := Me{PrincipalID: principal, Capabilities: []policy.Capability{}}

	a, err := s.Membership(ctx, principal)
	if errors.Is(err, ErrTenantNotFound) {
		return me, nil
	}
	if err != nil {
		return Me{}, err
	}

	companyID := a.CompanyID
	me.CompanyID = &companyID
	me.Role = a.Role

	sub, err := s.Store.Subscriptions().GetSubscriptionByCompany(ctx, a.CompanyID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Me{}, err
	}
	me.Subscription = sub.Status

	st := policy.State{Assignment: &a, Subscription: sub.Status}
	for _, c := range policy.CapabilitiesOf(a.Role) {
		req := policy.Request{Principal: principal, CompanyID: a.CompanyID, Capability: c}
		if policy.Authorize(req, st).Allowed {
			me.Capabilities = append(me.Capabilities, c)
		}
	}
	return me, nil
}
