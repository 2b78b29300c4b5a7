package domain

import "time"

// Credential holds a principal's secrets for one third-party platform. The
// secret fields are vault ciphertext; plaintext is never stored.
type Credential struct {
	ID          string
	PrincipalID string
	CompanyID   string
	Platform    string
	APIKey      []byte
	APISecret   []byte
	AccessToken []byte
	Active      bool
	LastSyncAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CredentialSecrets is plaintext input on save. Empty fields clear the
// stored value.
type CredentialSecrets struct {
	APIKey      string
	APISecret   string
	AccessToken string
}

// CredentialView is what leaves the service. Secret fields are either the
// plaintext (reveal) or a masked hint. Available is false when any stored
// secret failed to decrypt.
type CredentialView struct {
	Platform    string     `json:"platform"`
	APIKey      string     `json:"api_key,omitempty"`
	APISecret   string     `json:"api_secret,omitempty"`
	AccessToken string     `json:"access_token,omitempty"`
	Active      bool       `json:"active"`
	Available   bool       `json:"available"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
