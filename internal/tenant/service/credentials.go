package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

// maskVisible is how many trailing characters a masked secret shows.
const maskVisible = 4

// CredentialService stores third-party secrets. Rows belong to one
// principal in one company; nobody else can read them, not even an admin
// of the same company.
type CredentialService struct {
	Store store.Store
	Guard *Guard
	Audit *AuditService
	Vault *cryptox.Vault
}

// Save encrypts secrets under the caller's key and stores them, replacing
// any previous value for the platform.
func (s *CredentialService) Save(ctx context.Context, principal, companyID, platform string, secrets domain.CredentialSecrets, active bool) (domain.CredentialView, error) {
	if err := validPlatform(platform); err != nil {
		return domain.CredentialView{}, err
	}
	if secrets.APIKey == "" && secrets.APISecret == "" && secrets.AccessToken == "" {
		return domain.CredentialView{}, invalid("secrets", "at least one secret is required")
	}

	var saved domain.Credential
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapIntegrationsWrite,
			})
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			entry := domain.AuditEntry{Table: domain.TableCredentials, Action: domain.AuditInsert}
			saved = domain.Credential{
				ID:          idx.New().String(),
				PrincipalID: principal,
				CompanyID:   companyID,
				Platform:    platform,
				CreatedAt:   now,
			}
			old, err := tx.Credentials().GetCredential(ctx, principal, companyID, platform)
			switch {
			case err == nil:
				saved.ID, saved.CreatedAt, saved.LastSyncAt = old.ID, old.CreatedAt, old.LastSyncAt
				entry.Action = domain.AuditUpdate
				entry.Old = snapCredential(old)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}

			if saved.APIKey, err = s.Vault.EncryptString(secrets.APIKey, principal); err != nil {
				return err
			}
			if saved.APISecret, err = s.Vault.EncryptString(secrets.APISecret, principal); err != nil {
				return err
			}
			if saved.AccessToken, err = s.Vault.EncryptString(secrets.AccessToken, principal); err != nil {
				return err
			}
			saved.Active = active
			saved.UpdatedAt = now

			if err := tx.Credentials().UpsertCredential(ctx, saved); err != nil {
				return err
			}
			entry.RecordID = saved.ID
			entry.New = snapCredential(saved)
			_, err = s.Audit.Record(ctx, tx, grant, entry)
			return err
		})
	})
	if err != nil {
		return domain.CredentialView{}, err
	}
	return s.view(saved, principal, false), nil
}

// Get returns the caller's credential for platform. Secrets are masked
// unless reveal is set.
func (s *CredentialService) Get(ctx context.Context, principal, companyID, platform string, reveal bool) (domain.CredentialView, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapIntegrationsRead); err != nil {
		return domain.CredentialView{}, err
	}
	c, err := s.Store.Credentials().GetCredential(ctx, principal, companyID, platform)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CredentialView{}, ErrNotFound
	}
	if err != nil {
		return domain.CredentialView{}, err
	}
	return s.view(c, principal, reveal), nil
}

// List returns the caller's credentials in the company, masked.
func (s *CredentialService) List(ctx context.Context, principal, companyID string) ([]domain.CredentialView, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapIntegrationsRead); err != nil {
		return nil, err
	}
	creds, err := s.Store.Credentials().ListCredentials(ctx, principal, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CredentialView, 0, len(creds))
	for _, c := range creds {
		out = append(out, s.view(c, principal, false))
	}
	return out, nil
}

func (s *CredentialService) Delete(ctx context.Context, principal, companyID, platform string) error {
	return retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapIntegrationsWrite,
			})
			if err != nil {
				return err
			}
			old, err := tx.Credentials().GetCredential(ctx, principal, companyID, platform)
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := tx.Credentials().DeleteCredential(ctx, principal, companyID, platform); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableCredentials, Action: domain.AuditDelete, RecordID: old.ID,
				Old: snapCredential(old),
			})
			return err
		})
	})
}

// MarkSynced stamps the credential's last successful sync.
func (s *CredentialService) MarkSynced(ctx context.Context, principal, companyID, platform string) error {
	return retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapIntegrationsWrite,
			})
			if err != nil {
				return err
			}
			old, err := tx.Credentials().GetCredential(ctx, principal, companyID, platform)
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := tx.Credentials().MarkCredentialSynced(ctx, principal, companyID, platform); err != nil {
				return err
			}
			synced, err := tx.Credentials().GetCredential(ctx, principal, companyID, platform)
			if err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableCredentials, Action: domain.AuditUpdate, RecordID: old.ID,
				Old: snapCredential(old), New: snapCredential(synced),
			})
			return err
		})
	})
}

// view decrypts c for its owner. A secret that no longer opens, because
// the master key changed or the row was tampered with, is reported through
// Available rather than as an error.
func (s *CredentialService) view(c domain.Credential, principal string, reveal bool) domain.CredentialView {
	v := domain.CredentialView{
		Platform:   c.Platform,
		Active:     c.Active,
		Available:  true,
		LastSyncAt: c.LastSyncAt,
		UpdatedAt:  c.UpdatedAt,
	}

	open := func(blob []byte) string {
		if len(blob) == 0 {
			return ""
		}
		pt, ok := s.Vault.DecryptString(blob, principal)
		if !ok {
			v.Available = false
			return ""
		}
		if reveal {
			return pt
		}
		return maskSecret(pt)
	}
	v.APIKey = open(c.APIKey)
	v.APISecret = open(c.APISecret)
	v.AccessToken = open(c.AccessToken)
	return v
}

func maskSecret(s string) string {
	r := []rune(s)
	if len(r) <= maskVisible {
		return "****"
	}
	return "****" + string(r[len(r)-maskVisible:])
}
