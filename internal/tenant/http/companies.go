package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type CompanyHandler struct {
	Companies *service.CompanyService
}

// HandleGet returns the company.
//
//	@Summary		Get company
//	@Description	Returns the company's details. Requires company:read.
//	@Tags			Companies
//	@Produce		json
//	@Param			companyID	path		string						true	"Company ID"
//	@Success		200			{object}	tenantsdk.CompanyResponse	"Company"
//	@Failure		401			{object}	tenantsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse		"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse		"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID} [get].
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Companies.Get(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompany(c))
}

// HandleUpdate replaces the company's editable fields.
//
//	@Summary		Update company
//	@Description	Replaces name, tax id and contact details. Requires company:update (admin).
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			request		body		tenantsdk.CompanyRequest			true	"New company details"
//	@Success		200			{object}	tenantsdk.CompanyResponse			"Updated company"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID} [patch].
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.CompanyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	c, err := h.Companies.Update(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		companyInput(req.Name, req.TaxID, req.Email, req.Phone, req.Address))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompany(c))
}

// HandleDelete removes the company and everything it owns except its audit
// history.
//
//	@Summary		Delete company
//	@Description	Deletes the company, its memberships, subscription, credentials and records. The audit ledger is kept. Requires company:delete (admin).
//	@Tags			Companies
//	@Param			companyID	path	string	true	"Company ID"
//	@Success		204			"Deleted"
//	@Failure		401			{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse	"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse	"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID} [delete].
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Companies.Delete(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
