package tenantsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Bootstrap provisions a company for the caller, or returns the one they
// already have.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (*BootstrapResponse, error) {
	return call[BootstrapResponse](ctx, c, http.MethodPost, "/v1/bootstrap", req, http.StatusOK)
}

// Me returns the caller's company, role and effective capabilities.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	return call[MeResponse](ctx, c, http.MethodGet, "/v1/me", nil, http.StatusOK)
}

// Authorize asks for a policy decision. A denial is a normal response, not
// an error.
func (c *Client) Authorize(ctx context.Context, companyID, capability string) (*AuthorizeResponse, error) {
	req := AuthorizeRequest{CompanyID: companyID, Capability: capability}
	return call[AuthorizeResponse](ctx, c, http.MethodPost, "/v1/authorize", req, http.StatusOK)
}

func (c *Client) GetCompany(ctx context.Context, companyID string) (*CompanyResponse, error) {
	return call[CompanyResponse](ctx, c, http.MethodGet, companyPath(companyID, ""), nil, http.StatusOK)
}

func (c *Client) UpdateCompany(ctx context.Context, companyID string, req CompanyRequest) (*CompanyResponse, error) {
	return call[CompanyResponse](ctx, c, http.MethodPatch, companyPath(companyID, ""), req, http.StatusOK)
}

func (c *Client) DeleteCompany(ctx context.Context, companyID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, companyPath(companyID, ""), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ListMembers(ctx context.Context, companyID string) (*ListMembersResponse, error) {
	return call[ListMembersResponse](ctx, c, http.MethodGet, companyPath(companyID, "/members"), nil, http.StatusOK)
}

func (c *Client) AddMember(ctx context.Context, companyID, principalID, role string) (*MemberResponse, error) {
	req := AddMemberRequest{PrincipalID: principalID, Role: role}
	return call[MemberResponse](ctx, c, http.MethodPost, companyPath(companyID, "/members"), req, http.StatusCreated)
}

func (c *Client) ChangeMemberRole(ctx context.Context, companyID, principalID, role string) (*MemberResponse, error) {
	path := companyPath(companyID, "/members/"+url.PathEscape(principalID))
	return call[MemberResponse](ctx, c, http.MethodPut, path, ChangeRoleRequest{Role: role}, http.StatusOK)
}

func (c *Client) RemoveMember(ctx context.Context, companyID, principalID string) error {
	path := companyPath(companyID, "/members/"+url.PathEscape(principalID))
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) GetSubscription(ctx context.Context, companyID string) (*SubscriptionResponse, error) {
	return call[SubscriptionResponse](ctx, c, http.MethodGet, companyPath(companyID, "/subscription"), nil, http.StatusOK)
}

func (c *Client) UpdateSubscription(ctx context.Context, companyID string, req SubscriptionChangeRequest) (*SubscriptionResponse, error) {
	return call[SubscriptionResponse](ctx, c, http.MethodPatch, companyPath(companyID, "/subscription"), req, http.StatusOK)
}

// ApplyBillingEvent writes a subscription status as the billing provider.
// It authenticates with billingToken, not the client's bearer token.
func (c *Client) ApplyBillingEvent(ctx context.Context, billingToken string, ev BillingEventRequest) (*SubscriptionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/billing/events", ev, map[string]string{
		BillingTokenHeader: billingToken,
	})
	if err != nil {
		return nil, err
	}
	var out SubscriptionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAudit returns one page of the company's audit ledger, newest first.
func (c *Client) ListAudit(ctx context.Context, companyID string, q AuditQuery) (*ListAuditResponse, error) {
	v := url.Values{}
	if q.Table != "" {
		v.Set("table", q.Table)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.BeforeSeq > 0 {
		v.Set("before_seq", strconv.FormatInt(q.BeforeSeq, 10))
	}
	path := companyPath(companyID, "/audit")
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	return call[ListAuditResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}

// VerifyAudit replays the company's audit hash chain on the server.
func (c *Client) VerifyAudit(ctx context.Context, companyID string) (*AuditVerifyResponse, error) {
	return call[AuditVerifyResponse](ctx, c, http.MethodGet, companyPath(companyID, "/audit/verify"), nil, http.StatusOK)
}

func companyPath(companyID, suffix string) string {
	return "/v1/companies/" + url.PathEscape(companyID) + suffix
}
