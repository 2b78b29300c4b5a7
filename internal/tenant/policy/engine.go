// Package policy decides who may do what inside a company. It performs no
// I/O: callers load the State and hand it in.
package policy

import "github.com/aussiebroadwan/tally/internal/tenant/domain"

// RoleChange describes a mutation of a role assignment. NewRole is ignored
// when Remove is set.
type RoleChange struct {
	Principal string
	NewRole   domain.Role
	Remove    bool
}

type Request struct {
	Principal  string
	CompanyID  string
	Capability Capability
	// Target is set for role management requests.
	Target *RoleChange
}

// State is everything Authorize needs to know about the world.
type State struct {
	// Assignment is the requesting principal's home role, nil if none.
	Assignment *domain.RoleAssignment
	// Subscription of the requested company, empty if it has none.
	Subscription domain.SubscriptionStatus
	// AdminCount is the number of admins of the requested company. Only
	// consulted for role changes.
	AdminCount int
}

// Authorize evaluates req against st:
//
//  1. the principal must hold a role in the requested company
//  2. the company's subscription must be active, except for reading it
//  3. the role table must grant the capability
//  4. the sole admin may not demote or remove themselves
func Authorize(req Request, st State) Decision {
	if !req.Capability.Valid() {
		return deny(req.Capability, ReasonUnknownCapability)
	}

	a := st.Assignment
	if req.Principal == "" || req.CompanyID == "" || a == nil ||
		a.PrincipalID != req.Principal || a.CompanyID != req.CompanyID {
		return deny(req.Capability, ReasonNotMember)
	}

	if !st.Subscription.Active() && req.Capability != CapSubscriptionRead {
		return deny(req.Capability, ReasonSubscriptionInactive)
	}

	if !RoleHas(a.Role, req.Capability) {
		return deny(req.Capability, ReasonRoleLacksCapability)
	}

	if t := req.Target; t != nil && t.Principal == req.Principal && a.Role == domain.RoleAdmin {
		demotes := t.Remove || t.NewRole != domain.RoleAdmin
		if demotes && st.AdminCount <= 1 {
			return deny(req.Capability, ReasonLastAdmin)
		}
	}

	return Decision{
		Allowed: true,
		Grant: Grant{
			companyID:  req.CompanyID,
			principal:  req.Principal,
			capability: req.Capability,
			valid:      true,
		},
	}
}
