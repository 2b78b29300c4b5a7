package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP provisions a company for the calling principal.
//
//	@Summary		Bootstrap a company
//	@Description	Creates a company with the caller as its admin and an active default subscription, all in one transaction.
//	@Description	Idempotent: a caller who already belongs to a company gets that company's id back and nothing is created.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tenantsdk.BootstrapRequest			true	"Company details"
//	@Success		200		{object}	tenantsdk.BootstrapResponse			"Home company id"
//	@Failure		400		{object}	tenantsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401		{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		429		{object}	tenantsdk.ErrorResponse				"Rate limit exceeded"
//	@Failure		500		{object}	tenantsdk.ErrorResponse				"Provisioning failed, nothing was created"
//	@Security		BearerAuth
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := httpx.PrincipalFromContext(ctx)

	var req tenantsdk.BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	companyID, err := h.BootstrapService.Bootstrap(ctx, principal,
		companyInput(req.Name, req.TaxID, req.Email, req.Phone, req.Address))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Debug("bootstrap answered", slog.String("company_id", companyID))
	httpx.WriteJSON(w, http.StatusOK, tenantsdk.BootstrapResponse{CompanyID: companyID})
}
