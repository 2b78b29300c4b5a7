package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// Guard loads the state the policy engine needs and asks it for a decision.
// Every domain read and write goes through a Guard first.
type Guard struct {
	Store   store.Store
	Metrics *metrics.Collector
}

// Authorize returns a grant for capability c on companyID, or the denial as
// a *policy.DeniedError.
func (g *Guard) Authorize(ctx context.Context, principal, companyID string, c policy.Capability) (policy.Grant, error) {
	return g.AuthorizeTx(ctx, g.Store, policy.Request{Principal: principal, CompanyID: companyID, Capability: c})
}

// AuthorizeTx evaluates req against state read through q. Pass the caller's
// transaction when the decision must hold until commit, as for role changes.
func (g *Guard) AuthorizeTx(ctx context.Context, q store.Store, req policy.Request) (policy.Grant, error) {
	d, _, err := g.decide(ctx, q, req)
	if err != nil {
		return policy.Grant{}, err
	}
	if err := d.Err(); err != nil {
		return policy.Grant{}, err
	}
	return d.Grant, nil
}

// Check exposes the raw decision. The error is only for storage failures.
func (g *Guard) Check(ctx context.Context, principal, companyID string, c policy.Capability) (policy.Decision, error) {
	d, _, err := g.decide(ctx, g.Store, policy.Request{Principal: principal, CompanyID: companyID, Capability: c})
	return d, err
}

// access authorizes like AuthorizeTx and also returns the caller's role,
// for operations that mask fields by role.
func (g *Guard) access(ctx context.Context, q store.Store, req policy.Request) (policy.Grant, domain.Role, error) {
	d, st, err := g.decide(ctx, q, req)
	if err != nil {
		return policy.Grant{}, "", err
	}
	if err := d.Err(); err != nil {
		return policy.Grant{}, "", err
	}
	return d.Grant, st.Assignment.Role, nil
}

func (g *Guard) decide(ctx context.Context, q store.Store, req policy.Request) (policy.Decision, policy.State, error) {
	st, err := LoadState(ctx, q, req)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load authorization state",
			slog.String("company_id", req.CompanyID),
			slog.Any("error", err),
		)
		return policy.Decision{}, policy.State{}, err
	}

	d := policy.Authorize(req, st)
	g.Metrics.ObserveDecision(string(req.Capability), d.Allowed, string(d.Reason))
	if !d.Allowed {
		slogx.FromContext(ctx).Warn("authorization denied",
			slog.String("company_id", req.CompanyID),
			slog.String("capability", string(req.Capability)),
			slog.String("reason", string(d.Reason)),
		)
	}
	return d, st, nil
}

// LoadState reads the principal's assignment and, only when it belongs to
// the requested company, that company's subscription and admin count.
// Nothing about other companies is read. For role changes the assignment
// is read again once CountAdmins holds the admin row locks.
func LoadState(ctx context.Context, q store.Store, req policy.Request) (policy.State, error) {
	var st policy.State

	a, err := q.Roles().GetAssignmentByPrincipal(ctx, req.Principal)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return st, nil
	case err != nil:
		return st, err
	}
	st.Assignment = &a
	if a.CompanyID != req.CompanyID {
		return st, nil
	}

	sub, err := q.Subscriptions().GetSubscriptionByCompany(ctx, req.CompanyID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// No subscription row: treated as inactive.
	case err != nil:
		return st, err
	default:
		st.Subscription = sub.Status
	}

	if req.Target != nil {
		if st.AdminCount, err = q.Roles().CountAdmins(ctx, req.CompanyID); err != nil {
			return st, err
		}
		// CountAdmins may have waited on another role change. Decide on the
		// requester's role as it stands after the lock, not before it.
		a, err = q.Roles().GetAssignmentByPrincipal(ctx, req.Principal)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return policy.State{}, nil
		case err != nil:
			return st, err
		}
		st.Assignment = &a
	}
	return st, nil
}
