package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tally/pkg/tenantsdk"
)

type BillingCmd struct {
	SetStatus BillingSetStatusCmd `cmd:"" name:"set-status" help:"Apply a subscription status change as the billing provider"`
}

type BillingSetStatusCmd struct {
	ServerFlags `embed:""`

	Token string `help:"Billing provider shared token" required:"" env:"TENANT_BILLING_TOKEN"`

	CompanyID   string    `arg:"" help:"Company identifier"`
	Status      string    `arg:"" help:"New status" enum:"active,suspended,cancelled"`
	Plan        string    `help:"Plan name"`
	AmountCents int64     `help:"Monthly amount in cents" default:"-1"`
	RenewsAt    time.Time `help:"Renewal date (YYYY-MM-DD)" format:"2006-01-02"`
}

func (b *BillingSetStatusCmd) Run(ctx context.Context) error {
	sub, err := tenantsdk.NewClient(b.Server, "").ApplyBillingEvent(ctx, b.Token, b.event())
	if err != nil {
		return fmt.Errorf("failed to apply billing event: %w", err)
	}

	fmt.Printf("Company:  %s\n", sub.CompanyID)
	fmt.Printf("Status:   %s\n", sub.Status)
	fmt.Printf("Plan:     %s\n", sub.Plan)
	if sub.RenewsAt != nil {
		fmt.Printf("Renews:   %s\n", sub.RenewsAt.Format(time.DateOnly))
	}
	return nil
}

func (b *BillingSetStatusCmd) event() tenantsdk.BillingEventRequest {
	ev := tenantsdk.BillingEventRequest{
		CompanyID: b.CompanyID,
		Status:    b.Status,
	}
	if b.Plan != "" {
		ev.Plan = &b.Plan
	}
	if b.AmountCents >= 0 {
		ev.AmountCents = &b.AmountCents
	}
	if !b.RenewsAt.IsZero() {
		renews := b.RenewsAt.UTC()
		ev.RenewsAt = &renews
	}
	return ev
}
