package policy

import "github.com/aussiebroadwan/tally/internal/tenant/domain"

// CanViewFinancials reports whether role may see cost, profit and tax.
func CanViewFinancials(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleFinance
}

// MaskTransaction strips the restricted sub-fields for roles that may not
// see them. The row itself is already authorized by records:read.
func MaskTransaction(role domain.Role, t domain.Transaction) domain.Transaction {
	if CanViewFinancials(role) {
		return t
	}
	t.CostCents = nil
	t.ProfitCents = nil
	t.TaxCents = nil
	return t
}
