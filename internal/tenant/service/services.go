package service

import (
	"github.com/aussiebroadwan/tally/internal/tenant/metrics"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
)

// Services bundles every tenant service over one store.
type Services struct {
	Guard         *Guard
	Directory     *DirectoryService
	Subscriptions *SubscriptionService
	Bootstrap     *BootstrapService
	Members       *MembersService
	Companies     *CompanyService
	Credentials   *CredentialService
	Audit         *AuditService
	Transactions  *TransactionService
}

// New wires the services. m may be nil.
func New(st store.Store, vault *cryptox.Vault, m *metrics.Collector) *Services {
	guard := &Guard{Store: st, Metrics: m}
	directory := &DirectoryService{Store: st}
	audit := &AuditService{Store: st, Guard: guard, Metrics: m}

	return &Services{
		Guard:         guard,
		Directory:     directory,
		Subscriptions: &SubscriptionService{Store: st, Guard: guard, Audit: audit},
		Bootstrap:     &BootstrapService{Store: st, Directory: directory, Audit: audit, Metrics: m},
		Members:       &MembersService{Store: st, Guard: guard, Audit: audit},
		Companies:     &CompanyService{Store: st, Guard: guard, Audit: audit},
		Credentials:   &CredentialService{Store: st, Guard: guard, Audit: audit, Vault: vault},
		Audit:         audit,
		Transactions:  &TransactionService{Store: st, Guard: guard, Audit: audit},
	}
}
