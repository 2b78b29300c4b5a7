package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleFinance  Role = "finance"
	RoleReadonly Role = "readonly"
)

// Roles lists every role in descending privilege order.
var Roles = []Role{RoleAdmin, RoleFinance, RoleReadonly}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFinance, RoleReadonly:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// RoleAssignment is a principal's membership of their home company. The
// store keeps at most one per principal.
type RoleAssignment struct {
	ID          string
	PrincipalID string
	CompanyID   string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
