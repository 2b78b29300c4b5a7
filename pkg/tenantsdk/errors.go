package tenantsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the service puts in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeValidation           = "validation_error"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeForbidden            = "forbidden"
	ErrorCodeSubscriptionInactive = "subscription_inactive"
	ErrorCodeLastAdmin            = "last_admin"
	ErrorCodeConflict             = "conflict"
	ErrorCodeTenantNotFound       = "tenant_not_found"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeRateLimited          = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Details is set for validation errors: field name to message.
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("tenant service: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("tenant service: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsForbidden reports a policy denial other than an inactive subscription.
func IsForbidden(err error) bool { return hasCode(err, ErrorCodeForbidden) }

// IsSubscriptionInactive reports that the company's subscription blocks the
// request. The caller should be sent to billing.
func IsSubscriptionInactive(err error) bool { return hasCode(err, ErrorCodeSubscriptionInactive) }

func IsLastAdmin(err error) bool { return hasCode(err, ErrorCodeLastAdmin) }

// IsTenantNotFound reports that the principal has no company yet.
func IsTenantNotFound(err error) bool { return hasCode(err, ErrorCodeTenantNotFound) }

func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

func IsConflict(err error) bool { return hasCode(err, ErrorCodeConflict) }

// IsValidation reports a rejected request body. Details on the *APIError
// names the fields.
func IsValidation(err error) bool {
	return hasCode(err, ErrorCodeValidation) || hasCode(err, ErrorCodeInvalidRequest)
}

// parseErrorResponse turns an error body into *APIError. Bodies that are not
// JSON still produce an error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error            string            `json:"error"`
		ErrorDescription string            `json:"error_description"`
		Code             string            `json:"code"`
		Message          string            `json:"message"`
		Details          map[string]string `json:"details"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Code = http.StatusText(resp.StatusCode)
		return apiErr
	}

	switch {
	case envelope.Error != "":
		apiErr.Code = envelope.Error
		apiErr.Description = envelope.ErrorDescription
	case envelope.Code != "":
		apiErr.Code = envelope.Code
		apiErr.Description = envelope.Message
		apiErr.Details = envelope.Details
	default:
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
