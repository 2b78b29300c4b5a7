package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

// CredentialsHandler serves the caller's own integration credentials. No
// route returns another principal's secrets.
type CredentialsHandler struct {
	Credentials *service.CredentialService
}

// HandleList lists the caller's credentials with secrets masked.
//
//	@Summary		List credentials
//	@Description	Returns the caller's integration credentials in this company with secrets masked. Requires integrations:read.
//	@Tags			Credentials
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Success		200			{object}	tenantsdk.ListCredentialsResponse	"Credentials"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/credentials [get].
func (h *CredentialsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.Credentials.List(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := tenantsdk.ListCredentialsResponse{Credentials: make([]tenantsdk.CredentialResponse, len(views))}
	for i, v := range views {
		resp.Credentials[i] = toCredential(v)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one credential, optionally with plaintext secrets.
//
//	@Summary		Get credential
//	@Description	Returns the caller's credential for a platform. Secrets are masked unless reveal=true. available=false means the stored secrets could not be decrypted. Requires integrations:read.
//	@Tags			Credentials
//	@Produce		json
//	@Param			companyID	path		string							true	"Company ID"
//	@Param			platform	path		string							true	"Platform name"
//	@Param			reveal		query		bool							false	"Return plaintext secrets"
//	@Success		200			{object}	tenantsdk.CredentialResponse	"Credential"
//	@Failure		401			{object}	tenantsdk.ErrorResponse			"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse			"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse			"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse			"No credential for this platform"
//	@Failure		500			{object}	tenantsdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/credentials/{platform} [get].
func (h *CredentialsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reveal, _ := strconv.ParseBool(r.URL.Query().Get("reveal"))

	v, err := h.Credentials.Get(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		r.PathValue("platform"), reveal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredential(v))
}

// HandlePut stores or replaces the caller's credential for a platform.
//
//	@Summary		Save credential
//	@Description	Encrypts and stores the caller's secrets for a platform, replacing any previous ones. Requires integrations:write (admin, finance).
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			platform	path		string								true	"Platform name"
//	@Param			request		body		tenantsdk.CredentialRequest			true	"Secrets"
//	@Success		200			{object}	tenantsdk.CredentialResponse		"Saved credential, masked"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/credentials/{platform} [put].
func (h *CredentialsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.CredentialRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	v, err := h.Credentials.Save(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		r.PathValue("platform"), domain.CredentialSecrets{
			APIKey:      req.APIKey,
			APISecret:   req.APISecret,
			AccessToken: req.AccessToken,
		}, active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredential(v))
}

// HandleDelete removes the caller's credential for a platform.
//
//	@Summary		Delete credential
//	@Description	Deletes the caller's credential for a platform. Requires integrations:write (admin, finance).
//	@Tags			Credentials
//	@Param			companyID	path	string	true	"Company ID"
//	@Param			platform	path	string	true	"Platform name"
//	@Success		204			"Deleted"
//	@Failure		401			{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse	"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse	"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse	"No credential for this platform"
//	@Failure		500			{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/credentials/{platform} [delete].
func (h *CredentialsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Credentials.Delete(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), r.PathValue("platform"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSync stamps the credential's last sync time.
//
//	@Summary		Mark credential synced
//	@Description	Records that an integration sync using this credential just completed. Requires integrations:write (admin, finance).
//	@Tags			Credentials
//	@Param			companyID	path	string	true	"Company ID"
//	@Param			platform	path	string	true	"Platform name"
//	@Success		204			"Recorded"
//	@Failure		401			{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse	"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse	"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse	"No credential for this platform"
//	@Failure		500			{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/credentials/{platform}/sync [post].
func (h *CredentialsHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	err := h.Credentials.MarkSynced(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), r.PathValue("platform"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
