package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

// defaultAuditPage is used when the query names no limit.
const defaultAuditPage = 100

type AuditHandler struct {
	Audit *service.AuditService
}

// HandleList returns a page of the audit ledger.
//
//	@Summary		List audit records
//	@Description	Returns the company's audit ledger newest first. Page with before_seq. Requires audit:read (admin).
//	@Tags			Audit
//	@Produce		json
//	@Param			companyID	path		string						true	"Company ID"
//	@Param			table		query		string						false	"Only records for this table"
//	@Param			limit		query		int							false	"Page size (max 500)"
//	@Param			before_seq	query		int							false	"Only records with a lower sequence number"
//	@Success		200			{object}	tenantsdk.ListAuditResponse	"Audit page"
//	@Failure		400			{object}	tenantsdk.ErrorResponse		"Invalid query"
//	@Failure		401			{object}	tenantsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse		"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse		"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/audit [get].
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.AuditFilter{Table: q.Get("table"), Limit: defaultAuditPage}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeBadRequest(w, "limit must be a number")
			return
		}
		f.Limit = min(n, service.MaxAuditPage)
	}
	if s := q.Get("before_seq"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeBadRequest(w, "before_seq must be a number")
			return
		}
		f.BeforeSeq = n
	}

	records, err := h.Audit.Query(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := tenantsdk.ListAuditResponse{Records: make([]tenantsdk.AuditRecordResponse, len(records))}
	for i, rec := range records {
		resp.Records[i] = toAuditRecord(rec)
	}
	if n := len(records); n > 0 && n == f.Limit && records[n-1].Seq > 1 {
		resp.NextBeforeSeq = records[n-1].Seq
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleVerify replays the company's hash chain.
//
//	@Summary		Verify audit chain
//	@Description	Recomputes every record hash of the company's ledger and reports the first break, if any. Requires audit:read (admin).
//	@Tags			Audit
//	@Produce		json
//	@Param			companyID	path		string							true	"Company ID"
//	@Success		200			{object}	tenantsdk.AuditVerifyResponse	"Verification report"
//	@Failure		401			{object}	tenantsdk.ErrorResponse			"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse			"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse			"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/audit/verify [get].
func (h *AuditHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Audit.Verify(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVerifyReport(rep))
}
