package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type BootstrapCmd struct {
	ServerFlags `embed:""`

	Token string `help:"Access token of the principal to provision for" required:"" env:"TENANT_TOKEN"`

	Name    string `help:"Company name" required:""`
	TaxID   string `help:"Company tax identifier" required:"" name:"tax-id"`
	Email   string `help:"Company contact email"`
	Phone   string `help:"Company contact phone"`
	Address string `help:"Company address"`
}

func (b *BootstrapCmd) Run(ctx context.Context) error {
	req := tenantsdk.BootstrapRequest{
		Name:    b.Name,
		TaxID:   b.TaxID,
		Email:   b.Email,
		Phone:   b.Phone,
		Address: b.Address,
	}
	if errs := req.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid company details: %s", formatFieldErrors(errs))
	}

	resp, err := tenantsdk.NewClient(b.Server, b.Token).Bootstrap(ctx, req)
	if err != nil {
		var apiErr *tenantsdk.APIError
		if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
			return fmt.Errorf("bootstrap rejected: %s", formatFieldErrors(apiErr.Details))
		}
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	fmt.Printf("Company: %s\n", resp.CompanyID)
	return nil
}

func formatFieldErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + errs[field]
	}
	return strings.Join(parts, ", ")
}
