package domain

import "time"

type Company struct {
	ID        string
	Name      string
	Document  string // tax id, stored as entered
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyInput is what a principal submits when provisioning or editing a
// company. Optional fields are empty strings.
type CompanyInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// Profile links a principal to their home company. CompanyID is nil until
// bootstrap and again after the company is deleted.
type Profile struct {
	PrincipalID string
	CompanyID   *string
	UpdatedAt   time.Time
}
