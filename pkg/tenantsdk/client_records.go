package tenantsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListCredentials(ctx context.Context, companyID string) (*ListCredentialsResponse, error) {
	return call[ListCredentialsResponse](ctx, c, http.MethodGet, companyPath(companyID, "/credentials"), nil, http.StatusOK)
}

// GetCredential returns the caller's credential for platform. With reveal
// set the plaintext secrets are returned.
func (c *Client) GetCredential(ctx context.Context, companyID, platform string, reveal bool) (*CredentialResponse, error) {
	path := credentialPath(companyID, platform, "")
	if reveal {
		path += "?reveal=true"
	}
	return call[CredentialResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}

func (c *Client) SaveCredential(ctx context.Context, companyID, platform string, req CredentialRequest) (*CredentialResponse, error) {
	return call[CredentialResponse](ctx, c, http.MethodPut, credentialPath(companyID, platform, ""), req, http.StatusOK)
}

func (c *Client) DeleteCredential(ctx context.Context, companyID, platform string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, credentialPath(companyID, platform, ""), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// MarkCredentialSynced records that an integration sync just ran.
func (c *Client) MarkCredentialSynced(ctx context.Context, companyID, platform string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, credentialPath(companyID, platform, "/sync"), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ListTransactions(ctx context.Context, companyID string, limit int) (*ListTransactionsResponse, error) {
	path := companyPath(companyID, "/transactions")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return call[ListTransactionsResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}

func (c *Client) CreateTransaction(ctx context.Context, companyID string, req TransactionRequest) (*TransactionResponse, error) {
	return call[TransactionResponse](ctx, c, http.MethodPost, companyPath(companyID, "/transactions"), req, http.StatusCreated)
}

// GetTransaction returns one transaction, masked for the readonly role.
func (c *Client) GetTransaction(ctx context.Context, companyID, transactionID string) (*TransactionResponse, error) {
	path := companyPath(companyID, "/transactions/"+url.PathEscape(transactionID))
	return call[TransactionResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}

func (c *Client) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	path := companyPath(companyID, "/transactions/"+url.PathEscape(transactionID))
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func credentialPath(companyID, platform, suffix string) string {
	return companyPath(companyID, "/credentials/"+url.PathEscape(platform)+suffix)
}
