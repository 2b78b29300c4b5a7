package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type MembersHandler struct {
	Members *service.MembersService
}

// HandleList lists the company's members.
//
//	@Summary		List members
//	@Description	Returns every principal with a role in the company. Requires members:read.
//	@Tags			Members
//	@Produce		json
//	@Param			companyID	path		string							true	"Company ID"
//	@Success		200			{object}	tenantsdk.ListMembersResponse	"Members"
//	@Failure		401			{object}	tenantsdk.ErrorResponse			"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse			"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse			"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := tenantsdk.ListMembersResponse{Members: make([]tenantsdk.MemberResponse, len(members))}
	for i, m := range members {
		resp.Members[i] = toMember(m)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAdd gives a principal without a company a role in this one.
//
//	@Summary		Add member
//	@Description	Assigns a role to a principal who has no company yet. Requires roles:manage (admin).
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			request		body		tenantsdk.AddMemberRequest			true	"Principal and role"
//	@Success		201			{object}	tenantsdk.MemberResponse			"Member added"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		409			{object}	tenantsdk.ErrorResponse				"Principal already belongs to a company"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members [post].
func (h *MembersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.AddMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	a, err := h.Members.Add(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		req.PrincipalID, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(a))
}

// HandleChangeRole sets a member's role.
//
//	@Summary		Change member role
//	@Description	Changes a member's role. The only admin of a company cannot demote themselves. Requires roles:manage (admin).
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			principalID	path		string								true	"Member principal ID"
//	@Param			request		body		tenantsdk.ChangeRoleRequest			true	"New role"
//	@Success		200			{object}	tenantsdk.MemberResponse			"Updated member"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse				"No such member"
//	@Failure		409			{object}	tenantsdk.ErrorResponse				"Would remove the last admin"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members/{principalID} [put].
func (h *MembersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.ChangeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	a, err := h.Members.ChangeRole(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		r.PathValue("principalID"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMember(a))
}

// HandleRemove takes a member out of the company.
//
//	@Summary		Remove member
//	@Description	Removes a member and their integration credentials for this company. The only admin cannot remove themselves. Requires roles:manage (admin).
//	@Tags			Members
//	@Param			companyID	path	string	true	"Company ID"
//	@Param			principalID	path	string	true	"Member principal ID"
//	@Success		204			"Removed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse	"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse	"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse	"No such member"
//	@Failure		409			{object}	tenantsdk.ErrorResponse	"Would remove the last admin"
//	@Failure		500			{object}	tenantsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/members/{principalID} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	err := h.Members.Remove(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"), r.PathValue("principalID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
