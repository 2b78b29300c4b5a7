package tenantsdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "forbidden", "subscription_inactive")
	Error string `json:"error" example:"forbidden"`

	// ErrorDescription is a short explanation safe to show an end user
	ErrorDescription string `json:"error_description,omitempty" example:"Your role does not allow this action"`
}

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	Code    string            `json:"code" example:"validation_error"`
	Message string            `json:"message" example:"validation failed for some fields"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's hard dependencies.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Vault    string `json:"vault" example:"ok"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest provisions a company for the calling principal. Only Name
// and TaxID are required.
type BootstrapRequest struct {
	Name    string `json:"name" example:"Acme Pty Ltd"`
	TaxID   string `json:"tax_id" example:"12.345.678/0001-90"`
	Email   string `json:"email,omitempty" example:"accounts@acme.example"`
	Phone   string `json:"phone,omitempty" example:"+61 2 5550 1234"`
	Address string `json:"address,omitempty" example:"1 George St, Sydney"`
}

// BootstrapResponse carries the caller's home company id. Calling bootstrap
// again returns the same id.
type BootstrapResponse struct {
	CompanyID string `json:"company_id" example:"01JA2B3C4D5E6F7G8H9J0KMNPQ"`
}

// ============================================================================
// Identity and Authorization Types
// ============================================================================

// MeResponse describes the calling principal. CompanyID is null until the
// principal bootstraps or is added to a company.
type MeResponse struct {
	PrincipalID  string   `json:"principal_id" example:"user-123"`
	CompanyID    *string  `json:"company_id"`
	Role         string   `json:"role,omitempty" example:"admin"`
	Subscription string   `json:"subscription,omitempty" example:"active"`
	Capabilities []string `json:"capabilities"`
}

// AuthorizeRequest asks whether the caller may use a capability in a company.
type AuthorizeRequest struct {
	CompanyID  string `json:"company_id" example:"01JA2B3C4D5E6F7G8H9J0KMNPQ"`
	Capability string `json:"capability" example:"records:read"`
}

// AuthorizeResponse is the policy decision. Reason is empty when allowed.
type AuthorizeResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty" example:"role lacks capability"`
}

// ============================================================================
// Company Types
// ============================================================================

// CompanyRequest replaces a company's editable fields.
type CompanyRequest struct {
	Name    string `json:"name" example:"Acme Pty Ltd"`
	TaxID   string `json:"tax_id" example:"12.345.678/0001-90"`
	Email   string `json:"email,omitempty" example:"accounts@acme.example"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type CompanyResponse struct {
	ID        string    `json:"id" example:"01JA2B3C4D5E6F7G8H9J0KMNPQ"`
	Name      string    `json:"name" example:"Acme Pty Ltd"`
	TaxID     string    `json:"tax_id" example:"12.345.678/0001-90"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Member Types
// ============================================================================

type MemberResponse struct {
	PrincipalID string    `json:"principal_id" example:"user-456"`
	Role        string    `json:"role" example:"finance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// AddMemberRequest adds a principal who has no company yet.
type AddMemberRequest struct {
	PrincipalID string `json:"principal_id" example:"user-456"`
	Role        string `json:"role" example:"readonly"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" example:"finance"`
}

// ============================================================================
// Subscription Types
// ============================================================================

type SubscriptionResponse struct {
	CompanyID   string     `json:"company_id"`
	Status      string     `json:"status" example:"active"`
	Plan        string     `json:"plan" example:"default"`
	AmountCents int64      `json:"amount_cents" example:"0"`
	ActivatedAt time.Time  `json:"activated_at"`
	RenewsAt    *time.Time `json:"renews_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SubscriptionChangeRequest edits the caller's own subscription. Omitted
// fields are left alone. Cancel is the only status change an admin can make.
type SubscriptionChangeRequest struct {
	Plan        *string `json:"plan,omitempty" example:"pro"`
	AmountCents *int64  `json:"amount_cents,omitempty" example:"4900"`
	Cancel      bool    `json:"cancel,omitempty"`
}

// BillingEventRequest is sent by the billing provider with the shared
// X-Billing-Token header.
type BillingEventRequest struct {
	CompanyID   string     `json:"company_id" example:"01JA2B3C4D5E6F7G8H9J0KMNPQ"`
	Status      string     `json:"status" example:"suspended"`
	Plan        *string    `json:"plan,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	RenewsAt    *time.Time `json:"renews_at,omitempty"`
}

// ============================================================================
// Audit Types
// ============================================================================

// AuditRecordResponse is one ledger entry. Hashes are hex encoded. Old and
// New are the row snapshots before and after the change.
type AuditRecordResponse struct {
	ID          string          `json:"id"`
	Seq         int64           `json:"seq" example:"1"`
	PrincipalID string          `json:"principal_id" example:"user-123"`
	Table       string          `json:"table" example:"companies"`
	Action      string          `json:"action" example:"insert"`
	RecordID    string          `json:"record_id"`
	Old         json.RawMessage `json:"old,omitempty" swaggertype:"object"`
	New         json.RawMessage `json:"new,omitempty" swaggertype:"object"`
	// PrevHash is empty on the first record of a chain, which links to the
	// all-zero genesis hash.
	PrevHash    string          `json:"prev_hash,omitempty"`
	Hash        string          `json:"hash"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListAuditResponse is one page of audit records, newest first. Pass
// NextBeforeSeq back as before_seq to fetch the next page; it is zero on the
// last page.
type ListAuditResponse struct {
	Records       []AuditRecordResponse `json:"records"`
	NextBeforeSeq int64                 `json:"next_before_seq,omitempty"`
}

// AuditQuery narrows ListAudit. Zero values mean no restriction.
type AuditQuery struct {
	Table     string
	Limit     int
	BeforeSeq int64
}

// AuditVerifyResponse is the result of replaying a company's hash chain.
type AuditVerifyResponse struct {
	CompanyID string          `json:"company_id"`
	Records   int             `json:"records" example:"4"`
	HeadSeq   int64           `json:"head_seq" example:"4"`
	HeadHash  string          `json:"head_hash,omitempty"`
	OK        bool            `json:"ok"`
	Break     *AuditBreakInfo `json:"break,omitempty"`
}

type AuditBreakInfo struct {
	Seq      int64  `json:"seq"`
	RecordID string `json:"record_id"`
	Reason   string `json:"reason" example:"hash mismatch"`
}

// ============================================================================
// Credential Types
// ============================================================================

// CredentialRequest stores secrets for one platform. Every secret field is
// replaced; an empty field clears the stored value.
type CredentialRequest struct {
	APIKey      string `json:"api_key,omitempty"`
	APISecret   string `json:"api_secret,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// CredentialResponse shows masked secrets unless the caller asked to reveal
// them. Available is false when stored secrets could not be decrypted.
type CredentialResponse struct {
	Platform    string     `json:"platform" example:"mercadolivre"`
	APIKey      string     `json:"api_key,omitempty" example:"****9f3a"`
	APISecret   string     `json:"api_secret,omitempty"`
	AccessToken string     `json:"access_token,omitempty"`
	Active      bool       `json:"active"`
	Available   bool       `json:"available"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListCredentialsResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

// ============================================================================
// Transaction Types
// ============================================================================

type TransactionRequest struct {
	Description string     `json:"description" example:"Invoice 1042"`
	Category    string     `json:"category,omitempty" example:"sales"`
	AmountCents int64      `json:"amount_cents" example:"125000"`
	CostCents   *int64     `json:"cost_cents,omitempty"`
	ProfitCents *int64     `json:"profit_cents,omitempty"`
	TaxCents    *int64     `json:"tax_cents,omitempty"`
	OccurredAt  *time.Time `json:"occurred_at,omitempty"`
}

// TransactionResponse omits cost, profit and tax for roles that may not see
// them.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	CostCents   *int64    `json:"cost_cents,omitempty"`
	ProfitCents *int64    `json:"profit_cents,omitempty"`
	TaxCents    *int64    `json:"tax_cents,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
