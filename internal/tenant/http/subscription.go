package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type SubscriptionHandler struct {
	Subscriptions *service.SubscriptionService
}

// HandleGet returns the company's subscription. It stays readable while the
// subscription is inactive so the user can see why.
//
//	@Summary		Get subscription
//	@Description	Returns the company's subscription. Readable even when the subscription is suspended or cancelled. Requires subscription:read.
//	@Tags			Subscription
//	@Produce		json
//	@Param			companyID	path		string							true	"Company ID"
//	@Success		200			{object}	tenantsdk.SubscriptionResponse	"Subscription"
//	@Failure		401			{object}	tenantsdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403			{object}	tenantsdk.ErrorResponse			"Not a member or role lacks capability"
//	@Failure		404			{object}	tenantsdk.ErrorResponse			"Company has no subscription"
//	@Failure		500			{object}	tenantsdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/subscription [get].
func (h *SubscriptionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Subscriptions.Get(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSubscription(sub))
}

// HandleUpdate changes plan or amount, or cancels.
//
//	@Summary		Update subscription
//	@Description	Changes the plan or amount, or cancels the subscription. Reactivation only comes from the billing provider. Requires subscription:manage (admin).
//	@Tags			Subscription
//	@Accept			json
//	@Produce		json
//	@Param			companyID	path		string								true	"Company ID"
//	@Param			request		body		tenantsdk.SubscriptionChangeRequest	true	"Change"
//	@Success		200			{object}	tenantsdk.SubscriptionResponse		"Updated subscription"
//	@Failure		400			{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401			{object}	tenantsdk.ErrorResponse				"Missing or invalid token"
//	@Failure		402			{object}	tenantsdk.ErrorResponse				"Subscription inactive"
//	@Failure		403			{object}	tenantsdk.ErrorResponse				"Not a member or role lacks capability"
//	@Failure		500			{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/companies/{companyID}/subscription [patch].
func (h *SubscriptionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.SubscriptionChangeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	sub, err := h.Subscriptions.Manage(r.Context(), httpx.PrincipalFromContext(r.Context()), r.PathValue("companyID"),
		domain.SubscriptionChange{Plan: req.Plan, AmountCents: req.AmountCents, Cancel: req.Cancel})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSubscription(sub))
}

type BillingHandler struct {
	Subscriptions *service.SubscriptionService
}

// ServeHTTP applies a status change from the billing provider.
//
//	@Summary		Billing event
//	@Description	Writes the subscription status reported by the billing provider. Authenticated with the shared X-Billing-Token header, not a user token.
//	@Tags			Subscription
//	@Accept			json
//	@Produce		json
//	@Param			X-Billing-Token	header		string								true	"Billing provider shared secret"
//	@Param			request			body		tenantsdk.BillingEventRequest		true	"Billing event"
//	@Success		200				{object}	tenantsdk.SubscriptionResponse		"Updated subscription"
//	@Failure		400				{object}	tenantsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401				{object}	tenantsdk.ErrorResponse				"Missing or invalid billing token"
//	@Failure		404				{object}	tenantsdk.ErrorResponse				"Company has no subscription"
//	@Failure		500				{object}	tenantsdk.ErrorResponse				"Internal server error"
//	@Router			/v1/billing/events [post].
func (h *BillingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tenantsdk.BillingEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Request body must be a valid JSON object")
		return
	}

	sub, err := h.Subscriptions.ApplyBillingEvent(r.Context(), domain.BillingEvent{
		CompanyID:   req.CompanyID,
		Status:      domain.SubscriptionStatus(req.Status),
		Plan:        req.Plan,
		AmountCents: req.AmountCents,
		RenewsAt:    req.RenewsAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("billing event applied",
		slog.String("company_id", sub.CompanyID),
		slog.String("status", string(sub.Status)),
	)
	httpx.WriteJSON(w, http.StatusOK, toSubscription(sub))
}
