package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// DefaultPlan is the plan every bootstrapped company starts on.
const DefaultPlan = "default"

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionSuspended, SubscriptionCancelled:
		return true
	}
	return false
}

func (s SubscriptionStatus) Active() bool { return s == SubscriptionActive }

type Subscription struct {
	ID          string
	CompanyID   string
	Status      SubscriptionStatus
	Plan        string
	AmountCents int64
	ActivatedAt time.Time
	RenewsAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubscriptionChange is an admin edit of their own subscription. Nil fields
// are left alone. Only cancellation is accepted as a status change; every
// other transition comes from the billing provider.
type SubscriptionChange struct {
	Plan        *string
	AmountCents *int64
	Cancel      bool
}

// BillingEvent is a status write from the external billing system.
type BillingEvent struct {
	CompanyID   string
	Status      SubscriptionStatus
	Plan        *string
	AmountCents *int64
	RenewsAt    *time.Time
}
