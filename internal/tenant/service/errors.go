package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound means the principal has no home company yet. It is a
	// normal state: the caller should offer bootstrap.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrPrincipalHasCompany is returned when adding a member who already
	// belongs to a company. Principals have exactly one home company.
	ErrPrincipalHasCompany = errors.New("principal already belongs to a company")

	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoGrant is returned by the audit ledger when asked to write
	// without an authorization grant for the company.
	ErrNoGrant = errors.New("audit write requires a grant")
)

// ValidationError names the offending field. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
