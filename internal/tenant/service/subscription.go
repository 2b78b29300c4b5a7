package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/aussiebroadwan/tally/internal/tenant/policy"
	"github.com/aussiebroadwan/tally/internal/tenant/store"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// BillingActor is the principal recorded on audit entries written for
// billing events.
const BillingActor = "system:billing"

// SubscriptionService is the subscription gate. Status changes come from
// the billing provider; admins may only change plan details or cancel.
type SubscriptionService struct {
	Store store.Store
	Guard *Guard
	Audit *AuditService
}

// Status returns the company's subscription status, ErrNotFound if the
// company has no subscription.
func (s *SubscriptionService) Status(ctx context.Context, companyID string) (domain.SubscriptionStatus, error) {
	sub, err := s.Store.Subscriptions().GetSubscriptionByCompany(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return sub.Status, nil
}

// IsActive treats a missing subscription as inactive.
func (s *SubscriptionService) IsActive(ctx context.Context, companyID string) (bool, error) {
	st, err := s.Status(ctx, companyID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return st.Active(), nil
}

// Get is readable by every member, also while the subscription is inactive.
func (s *SubscriptionService) Get(ctx context.Context, principal, companyID string) (domain.Subscription, error) {
	if _, err := s.Guard.Authorize(ctx, principal, companyID, policy.CapSubscriptionRead); err != nil {
		return domain.Subscription{}, err
	}
	sub, err := s.Store.Subscriptions().GetSubscriptionByCompany(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Subscription{}, ErrNotFound
	}
	return sub, err
}

// Manage applies an admin's change to their own company's subscription.
func (s *SubscriptionService) Manage(ctx context.Context, principal, companyID string, ch domain.SubscriptionChange) (domain.Subscription, error) {
	if ch.Plan == nil && ch.AmountCents == nil && !ch.Cancel {
		return domain.Subscription{}, invalid("subscription", "no change requested")
	}
	if ch.Plan != nil {
		p := strings.TrimSpace(*ch.Plan)
		if p == "" || len(p) > maxPlan {
			return domain.Subscription{}, invalid("plan", "must be 1 to 64 characters")
		}
		ch.Plan = &p
	}
	if ch.AmountCents != nil && *ch.AmountCents < 0 {
		return domain.Subscription{}, invalid("amount_cents", "must not be negative")
	}

	var updated domain.Subscription
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			grant, err := s.Guard.AuthorizeTx(ctx, tx, policy.Request{
				Principal: principal, CompanyID: companyID, Capability: policy.CapSubscriptionManage,
			})
			if err != nil {
				return err
			}

			old, err := tx.Subscriptions().GetSubscriptionByCompany(ctx, companyID)
			if err != nil {
				return err
			}
			updated = old
			if ch.Plan != nil {
				updated.Plan = *ch.Plan
			}
			if ch.AmountCents != nil {
				updated.AmountCents = *ch.AmountCents
			}
			if ch.Cancel {
				updated.Status = domain.SubscriptionCancelled
				updated.RenewsAt = nil
			}
			updated.UpdatedAt = time.Now().UTC()

			if err := tx.Subscriptions().UpdateSubscription(ctx, updated); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, grant, domain.AuditEntry{
				Table: domain.TableSubscriptions, Action: domain.AuditUpdate, RecordID: old.ID,
				Old: snapSubscription(old), New: snapSubscription(updated),
			})
			return err
		})
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	if ch.Cancel {
		slogx.FromContext(ctx).Info("subscription cancelled by admin", slog.String("company_id", companyID))
	}
	return updated, nil
}

// ApplyBillingEvent writes a status reported by the billing provider. The
// caller is authenticated as the billing system, not as a member, so the
// write is audited under BillingActor.
func (s *SubscriptionService) ApplyBillingEvent(ctx context.Context, ev domain.BillingEvent) (domain.Subscription, error) {
	if ev.CompanyID == "" {
		return domain.Subscription{}, invalid("company_id", "is required")
	}
	if !ev.Status.Valid() {
		return domain.Subscription{}, invalid("status", "must be active, suspended or cancelled")
	}
	if ev.AmountCents != nil && *ev.AmountCents < 0 {
		return domain.Subscription{}, invalid("amount_cents", "must not be negative")
	}
	if ev.Plan != nil && (*ev.Plan == "" || len(*ev.Plan) > maxPlan) {
		return domain.Subscription{}, invalid("plan", "must be 1 to 64 characters")
	}

	var updated domain.Subscription
	err := retryConflicts(ctx, func() error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			old, err := tx.Subscriptions().GetSubscriptionByCompany(ctx, ev.CompanyID)
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			updated = old
			if ev.Status.Active() && !old.Status.Active() {
				updated.ActivatedAt = now
			}
			updated.Status = ev.Status
			if ev.Plan != nil {
				updated.Plan = *ev.Plan
			}
			if ev.AmountCents != nil {
				updated.AmountCents = *ev.AmountCents
			}
			if ev.RenewsAt != nil {
				r := ev.RenewsAt.UTC()
				updated.RenewsAt = &r
			}
			updated.UpdatedAt = now

			if err := tx.Subscriptions().UpdateSubscription(ctx, updated); err != nil {
				return err
			}
			_, err = s.Audit.Record(ctx, tx, policy.SystemGrant(ev.CompanyID, BillingActor), domain.AuditEntry{
				Table: domain.TableSubscriptions, Action: domain.AuditUpdate, RecordID: old.ID,
				Old: snapSubscription(old), New: snapSubscription(updated),
			})
			return err
		})
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	slogx.FromContext(ctx).Info("billing event applied",
		slog.String("company_id", ev.CompanyID),
		slog.String("status", string(ev.Status)),
	)
	return updated, nil
}
