package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/service"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

// writeServiceError maps a service error onto a status code and a message
// an end user can read. Storage and other unexpected errors are logged and
// reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, tenantsdk.ValidationErrorResponse{
			Code:    tenantsdk.ErrorCodeValidation,
			Message: "validation failed for some fields",
			Details: map[string]string{verr.Field: verr.Message},
		})
		return
	}

	switch {
	case errors.Is(err, policy.ErrSubscriptionInactive):
		httpx.WriteError(w, http.StatusPaymentRequired, tenantsdk.ErrorCodeSubscriptionInactive,
			"Your company's subscription is not active")
	case errors.Is(err, policy.ErrLastAdmin):
		httpx.WriteError(w, http.StatusConflict, tenantsdk.ErrorCodeLastAdmin,
			"A company must keep at least one admin")
	case errors.Is(err, policy.ErrDenied):
		httpx.WriteError(w, http.StatusForbidden, tenantsdk.ErrorCodeForbidden,
			"You do not have permission to do this")
	case errors.Is(err, service.ErrPrincipalHasCompany):
		httpx.WriteError(w, http.StatusConflict, tenantsdk.ErrorCodeConflict,
			"This user already belongs to a company")
	case errors.Is(err, service.ErrTenantNotFound):
		httpx.WriteError(w, http.StatusNotFound, tenantsdk.ErrorCodeTenantNotFound,
			"You are not a member of any company yet")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, tenantsdk.ErrorCodeNotFound,
			"The requested item was not found")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, tenantsdk.ErrorCodeConflict,
			"The item already exists")
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, tenantsdk.ErrorCodeInvalidRequest,
			"The request is not valid")
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, tenantsdk.ErrorCodeServerError,
			"Something went wrong. Please try again later")
	}
}

// writeBadRequest reports a body or query that could not be parsed.
func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, tenantsdk.ErrorCodeInvalidRequest, desc)
}
