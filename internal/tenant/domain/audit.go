package domain

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditInsert AuditAction = "insert"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// Audited table names.
const (
	TableCompanies       = "companies"
	TableRoleAssignments = "role_assignments"
	TableSubscriptions   = "subscriptions"
	TableProfiles        = "profiles"
	TableCredentials     = "credentials"
	TableTransactions    = "transactions"
)

// AuditEntry describes one privileged mutation. Old is nil for inserts and
// New is nil for deletes.
type AuditEntry struct {
	Table    string
	Action   AuditAction
	RecordID string
	Old      any
	New      any
}

// AuditRecord is a sealed ledger row. Seq is per company and gapless;
// Hash covers every other field plus PrevHash.
type AuditRecord struct {
	ID          string
	CompanyID   string
	PrincipalID string
	Table       string
	Action      AuditAction
	RecordID    string
	OldSnapshot json.RawMessage
	NewSnapshot json.RawMessage
	Seq         int64
	PrevHash    []byte
	Hash        []byte
	CreatedAt   time.Time
}

// AuditFilter narrows an audit query. Zero values mean no restriction,
// except Limit which falls back to a default page size.
type AuditFilter struct {
	Table     string
	Limit     int
	BeforeSeq int64
}
