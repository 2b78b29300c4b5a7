package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type MeHandler struct {
	Directory *service.DirectoryService
}

// ServeHTTP describes the calling principal.
//
//	@Summary		Current principal
//	@Description	Returns the caller's home company, role, subscription status and the capabilities they can use right now.
//	@Description	company_id is null for a principal who has not bootstrapped or been added to a company.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	tenantsdk.MeResponse	"Principal view"
//	@Failure		401	{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500	{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	me, err := h.Directory.Me(r.Context(), httpx.PrincipalFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	caps := make([]string, len(me.Capabilities))
	for i, c := range me.Capabilities {
		caps[i] = c.String()
	}
	httpx.WriteJSON(w, http.StatusOK, tenantsdk.MeResponse{
		PrincipalID:  me.PrincipalID,
		CompanyID:    me.CompanyID,
		Role:         me.Role.String(),
		Subscription: string(me.Subscription),
		Capabilities: caps,
	})
}

type AuthorizeHandler struct {
	Guard *service.Guard
}

// ServeHTTP returns a policy decision for the caller.
//
//	@Summary		Check a capability
//	@Description	Evaluates whether the caller may use a capability in a company. A denial is a 200 response with allowed=false and a reason.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tenantsdk.AuthorizeRequest	true	"Company and capability"
//	@Success		200		{object}	tenantsdk.AuthorizeResponse	"Decision"
//	@Failure		400		{object}	tenantsdk.ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	tenantsdk.ErrorResponse		"Missing or invalid token"
//	@Failure		500		{object}	tenantsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/authorize [post].
func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.AuthorizeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}
	if req.CompanyID == "" {
		writeBadRequest(w, "company_id is required")
		return
	}

	d, err := h.Guard.Check(r.Context(), httpx.PrincipalFromContext(r.Context()), req.CompanyID, policy.Capability(req.Capability))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tenantsdk.AuthorizeResponse{
		Allowed: d.Allowed,
		Reason:  string(d.Reason),
	})
}
