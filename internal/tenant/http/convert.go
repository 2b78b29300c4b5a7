package http

import (
	"bytes"
	"encoding/hex"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/ledger"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

func toCompany(c domain.Company) tenantsdk.CompanyResponse {
	return tenantsdk.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMember(a domain.RoleAssignment) tenantsdk.MemberResponse {
	return tenantsdk.MemberResponse{
		PrincipalID: a.PrincipalID,
		Role:        a.Role.String(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toSubscription(s domain.Subscription) tenantsdk.SubscriptionResponse {
	return tenantsdk.SubscriptionResponse{
		CompanyID:   s.CompanyID,
		Status:      string(s.Status),
		Plan:        s.Plan,
		AmountCents: s.AmountCents,
		ActivatedAt: s.ActivatedAt,
		RenewsAt:    s.RenewsAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toAuditRecord(r domain.AuditRecord) tenantsdk.AuditRecordResponse {
	out := tenantsdk.AuditRecordResponse{
		ID:          r.ID,
		Seq:         r.Seq,
		PrincipalID: r.PrincipalID,
		Table:       r.Table,
		Action:      string(r.Action),
		RecordID:    r.RecordID,
		Old:         r.OldSnapshot,
		New:         r.NewSnapshot,
		Hash:        hex.EncodeToString(r.Hash),
		CreatedAt:   r.CreatedAt,
	}
	// The first record links to the genesis hash; clients see no prev_hash.
	if len(r.PrevHash) > 0 && !bytes.Equal(r.PrevHash, ledger.Genesis) {
		out.PrevHash = hex.EncodeToString(r.PrevHash)
	}
	return out
}

func toVerifyReport(rep ledger.Report) tenantsdk.AuditVerifyResponse {
	out := tenantsdk.AuditVerifyResponse{
		CompanyID: rep.CompanyID,
		Records:   rep.Records,
		HeadSeq:   rep.HeadSeq,
		OK:        rep.OK,
	}
	if len(rep.HeadHash) > 0 {
		out.HeadHash = hex.EncodeToString(rep.HeadHash)
	}
	if rep.Break != nil {
		out.Break = &tenantsdk.AuditBreakInfo{
			Seq:      rep.Break.Seq,
			RecordID: rep.Break.RecordID,
			Reason:   rep.Break.Reason,
		}
	}
	return out
}

func toCredential(v domain.CredentialView) tenantsdk.CredentialResponse {
	return tenantsdk.CredentialResponse{
		Platform:    v.Platform,
		APIKey:      v.APIKey,
		APISecret:   v.APISecret,
		AccessToken: v.AccessToken,
		Active:      v.Active,
		Available:   v.Available,
		LastSyncAt:  v.LastSyncAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toTransaction(t domain.Transaction) tenantsdk.TransactionResponse {
	return tenantsdk.TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Category:    t.Category,
		AmountCents: t.AmountCents,
		CostCents:   t.CostCents,
		ProfitCents: t.ProfitCents,
		TaxCents:    t.TaxCents,
		OccurredAt:  t.OccurredAt,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func companyInput(name, taxID, email, phone, address string) domain.CompanyInput {
	return domain.CompanyInput{
		Name:    name,
		TaxID:   taxID,
		Email:   email,
		Phone:   phone,
		Address: address,
	}
}
