package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is a transient lock or serialization failure. The whole
	// transaction may be retried.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Sub-repositories are methods so a Tx-scoped Store
// can hand out the same repos bound to the transaction.
type Store interface {
	Companies() Companies
	Roles() Roles
	Subscriptions() Subscriptions
	Profiles() Profiles
	Audit() Audit
	Credentials() Credentials
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// back, nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Companies interface {
	CreateCompany(ctx context.Context, c domain.Company) error
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// UpdateCompany replaces every mutable field and bumps updated_at.
	UpdateCompany(ctx context.Context, c domain.Company) error

	// DeleteCompany cascades to role_assignments, subscriptions, credentials
	// and transactions and unlinks profiles. Audit rows are kept.
	DeleteCompany(ctx context.Context, id string) error
}

type Roles interface {
	// CreateAssignment fails with ErrAlreadyExists when the principal
	// already has a home company.
	CreateAssignment(ctx context.Context, a domain.RoleAssignment) error

	// GetAssignmentByPrincipal returns the principal's home assignment.
	GetAssignmentByPrincipal(ctx context.Context, principalID string) (domain.RoleAssignment, error)

	ListAssignmentsByCompany(ctx context.Context, companyID string) ([]domain.RoleAssignment, error)

	UpdateAssignmentRole(ctx context.Context, companyID, principalID string, role domain.Role) error
	DeleteAssignment(ctx context.Context, companyID, principalID string) error

	// CountAdmins counts admins of a company. Inside a transaction drivers
	// lock the counted rows so concurrent demotions serialise.
	CountAdmins(ctx context.Context, companyID string) (int, error)
}

type Subscriptions interface {
	CreateSubscription(ctx context.Context, s domain.Subscription) error
	GetSubscriptionByCompany(ctx context.Context, companyID string) (domain.Subscription, error)

	// UpdateSubscription writes status, plan, amount and renewal date.
	UpdateSubscription(ctx context.Context, s domain.Subscription) error
}

type Profiles interface {
	// UpsertProfile creates or replaces the principal's profile link.
	UpsertProfile(ctx context.Context, p domain.Profile) error
	GetProfile(ctx context.Context, principalID string) (domain.Profile, error)
}

// Audit is the ledger's storage. There is deliberately no update or delete:
// the schemas reject both with triggers as well.
type Audit interface {
	// AppendAudit inserts a sealed record. (company_id, seq) is unique.
	AppendAudit(ctx context.Context, r domain.AuditRecord) error

	// LastAudit returns the newest record of a company, ErrNotFound when the
	// chain is empty. Inside a transaction drivers hold a per-company lock
	// until commit so two writers cannot both extend the same head.
	LastAudit(ctx context.Context, companyID string) (domain.AuditRecord, error)

	// ListAudit returns records newest first, filtered.
	ListAudit(ctx context.Context, companyID string, f domain.AuditFilter) ([]domain.AuditRecord, error)

	// ListAllAudit returns a company's full chain in ascending seq order.
	ListAllAudit(ctx context.Context, companyID string) ([]domain.AuditRecord, error)

	// ListAuditCompanies returns every company id that has a chain,
	// including companies that have since been deleted.
	ListAuditCompanies(ctx context.Context) ([]string, error)
}

type Credentials interface {
	// UpsertCredential inserts or replaces the row keyed by
	// (principal, company, platform).
	UpsertCredential(ctx context.Context, c domain.Credential) error
	GetCredential(ctx context.Context, principalID, companyID, platform string) (domain.Credential, error)
	ListCredentials(ctx context.Context, principalID, companyID string) ([]domain.Credential, error)
	DeleteCredential(ctx context.Context, principalID, companyID, platform string) error
	MarkCredentialSynced(ctx context.Context, principalID, companyID, platform string) error

	// DeleteCredentialsForPrincipal drops every credential a principal holds
	// in a company. Used when the member is removed.
	DeleteCredentialsForPrincipal(ctx context.Context, principalID, companyID string) error
}

type Transactions interface {
	CreateTransaction(ctx context.Context, t domain.Transaction) error
	GetTransaction(ctx context.Context, companyID, id string) (domain.Transaction, error)

	// ListTransactions returns newest first, at most limit rows.
	ListTransactions(ctx context.Context, companyID string, limit int) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, companyID, id string) error
}
