package service

import (
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

// Audit snapshots. They are what the ledger stores as old/new values, so
// they must never carry secret material.

type companySnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

func snapCompany(c domain.Company) companySnapshot {
	return companySnapshot{ID: c.ID, Name: c.Name, Document: c.Document, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

type assignmentSnapshot struct {
	ID          string      `json:"id"`
	PrincipalID string      `json:"principal_id"`
	CompanyID   string      `json:"company_id"`
	Role        domain.Role `json:"role"`
}

func snapAssignment(a domain.RoleAssignment) assignmentSnapshot {
	return assignmentSnapshot{ID: a.ID, PrincipalID: a.PrincipalID, CompanyID: a.CompanyID, Role: a.Role}
}

type subscriptionSnapshot struct {
	ID          string                    `json:"id"`
	CompanyID   string                    `json:"company_id"`
	Status      domain.SubscriptionStatus `json:"status"`
	Plan        string                    `json:"plan"`
	AmountCents int64                     `json:"amount_cents"`
	ActivatedAt time.Time                 `json:"activated_at"`
	RenewsAt    *time.Time                `json:"renews_at,omitempty"`
}

func snapSubscription(s domain.Subscription) subscriptionSnapshot {
	return subscriptionSnapshot{
		ID: s.ID, CompanyID: s.CompanyID, Status: s.Status, Plan: s.Plan,
		AmountCents: s.AmountCents, ActivatedAt: s.ActivatedAt, RenewsAt: s.RenewsAt,
	}
}

type profileSnapshot struct {
	PrincipalID string  `json:"principal_id"`
	CompanyID   *string `json:"company_id"`
}

func snapProfile(p domain.Profile) profileSnapshot {
	return profileSnapshot{PrincipalID: p.PrincipalID, CompanyID: p.CompanyID}
}

// credentialSnapshot records which secrets are set, never their values.
type credentialSnapshot struct {
	ID             string     `json:"id"`
	PrincipalID    string     `json:"principal_id"`
	Platform       string     `json:"platform"`
	Active         bool       `json:"active"`
	HasAPIKey      bool       `json:"has_api_key"`
	HasAPISecret   bool       `json:"has_api_secret"`
	HasAccessToken bool       `json:"has_access_token"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
}

func snapCredential(c domain.Credential) credentialSnapshot {
	return credentialSnapshot{
		ID: c.ID, PrincipalID: c.PrincipalID, Platform: c.Platform, Active: c.Active,
		HasAPIKey: len(c.APIKey) > 0, HasAPISecret: len(c.APISecret) > 0, HasAccessToken: len(c.AccessToken) > 0,
		LastSyncAt: c.LastSyncAt,
	}
}

type transactionSnapshot struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	CostCents   *int64    `json:"cost_cents,omitempty"`
	ProfitCents *int64    `json:"profit_cents,omitempty"`
	TaxCents    *int64    `json:"tax_cents,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func snapTransaction(t domain.Transaction) transactionSnapshot {
	return transactionSnapshot{
		ID: t.ID, Description: t.Description, Category: t.Category, AmountCents: t.AmountCents,
		CostCents: t.CostCents, ProfitCents: t.ProfitCents, TaxCents: t.TaxCents, OccurredAt: t.OccurredAt,
	}
}
