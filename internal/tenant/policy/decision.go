package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrDenied is the generic negative outcome.
	ErrDenied = errors.New("authorization denied")

	// ErrSubscriptionInactive is kept apart from ErrDenied so callers can
	// send the user to billing rather than show a permission error.
	ErrSubscriptionInactive = errors.New("subscription inactive")

	// ErrLastAdmin blocks the sole admin from demoting or removing themselves.
	ErrLastAdmin = errors.New("cannot remove last admin")
)

// Reason is a stable, user-presentable explanation of a denial.
type Reason string

const (
	ReasonNotMember            Reason = "not a member"
	ReasonSubscriptionInactive Reason = "subscription inactive"
	ReasonRoleLacksCapability  Reason = "role lacks capability"
	ReasonLastAdmin            Reason = "cannot remove last admin"
	ReasonUnknownCapability    Reason = "unknown capability"
)

// DeniedError carries the reason of a Deny decision. It unwraps to one of
// ErrDenied, ErrSubscriptionInactive or ErrLastAdmin.
type DeniedError struct {
	Reason     Reason
	Capability Capability
	err        error
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Capability, e.Reason)
}

func (e *DeniedError) Unwrap() error { return e.err }

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  Reason
	// Grant is only valid when Allowed is true.
	Grant Grant
}

// Err is nil for Allow, otherwise a *DeniedError.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	var base error
	switch d.Reason {
	case ReasonSubscriptionInactive:
		base = ErrSubscriptionInactive
	case ReasonLastAdmin:
		base = ErrLastAdmin
	default:
		base = ErrDenied
	}
	return &DeniedError{Reason: d.Reason, Capability: d.Grant.capability, err: base}
}

func deny(c Capability, r Reason) Decision {
	// The capability rides along on an invalid grant so Err can name it.
	return Decision{Reason: r, Grant: Grant{capability: c}}
}

// Grant is proof that a policy decision allowed something. Its fields are
// unexported: outside this package a valid Grant comes only from an Allow
// decision or from SystemGrant. The audit ledger refuses to write without one.
type Grant struct {
	companyID  string
	principal  string
	capability Capability
	system     bool
	valid      bool
}

func (g Grant) Valid() bool            { return g.valid }
func (g Grant) CompanyID() string      { return g.companyID }
func (g Grant) Principal() string      { return g.principal }
func (g Grant) Capability() Capability { return g.capability }
func (g Grant) System() bool           { return g.system }

// SystemGrant authorizes a write that runs without a member role: tenant
// bootstrap (actor is the new principal) and billing events (actor is a
// system identity). Every use is recorded in the audit ledger under actor.
func SystemGrant(companyID, actor string) Grant {
	return Grant{
		companyID: companyID,
		principal: actor,
		system:    true,
		valid:     companyID != "" && actor != "",
	}
}
