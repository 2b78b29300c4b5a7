package policy

import (
	"fmt"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

// Capability names one thing a principal may do inside a company.
type Capability string

const (
	CapCompanyRead        Capability = "company:read"
	CapCompanyUpdate      Capability = "company:update"
	CapCompanyDelete      Capability = "company:delete"
	CapMembersRead        Capability = "members:read"
	CapRolesManage        Capability = "roles:manage"
	CapSubscriptionRead   Capability = "subscription:read"
	CapSubscriptionManage Capability = "subscription:manage"
	CapRecordsRead        Capability = "records:read"
	CapRecordsWrite       Capability = "records:write"
	CapIntegrationsRead   Capability = "integrations:read"
	CapIntegrationsWrite  Capability = "integrations:write"
	CapAuditRead          Capability = "audit:read"
)

// AllCapabilities in a stable order.
var AllCapabilities = []Capability{
	CapCompanyRead, CapCompanyUpdate, CapCompanyDelete,
	CapMembersRead, CapRolesManage,
	CapSubscriptionRead, CapSubscriptionManage,
	CapRecordsRead, CapRecordsWrite,
	CapIntegrationsRead, CapIntegrationsWrite,
	CapAuditRead,
}

var roleTable = map[domain.Role]map[Capability]struct{}{
	domain.RoleAdmin: set(AllCapabilities...),
	domain.RoleFinance: set(
		CapCompanyRead,
		CapMembersRead,
		CapSubscriptionRead,
		CapRecordsRead, CapRecordsWrite,
		CapIntegrationsRead, CapIntegrationsWrite,
	),
	domain.RoleReadonly: set(
		CapCompanyRead,
		CapMembersRead,
		CapSubscriptionRead,
		CapRecordsRead,
	),
}

func set(caps ...Capability) map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		m[c] = struct{}{}
	}
	return m
}

func (c Capability) Valid() bool {
	_, ok := roleTable[domain.RoleAdmin][c]
	return ok
}

func (c Capability) String() string { return string(c) }

// ParseCapability validates a capability name received from a caller.
func ParseCapability(s string) (Capability, error) {
	c := Capability(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown capability %q", s)
	}
	return c, nil
}

// RoleHas reports whether the role table grants c to role. Unknown roles
// have nothing.
func RoleHas(role domain.Role, c Capability) bool {
	_, ok := roleTable[role][c]
	return ok
}

// CapabilitiesOf lists the capabilities granted to role.
func CapabilitiesOf(role domain.Role) []Capability {
	var out []Capability
	for _, c := range AllCapabilities {
		if RoleHas(role, c) {
			out = append(out, c)
		}
	}
	return out
}
