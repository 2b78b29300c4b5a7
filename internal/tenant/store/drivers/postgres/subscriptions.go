package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type subscriptionsRepo struct {
	q querier
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (id, company_id, status, plan, amount_cents, activated_at, renews_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.CompanyID, string(s.Status), s.Plan, s.AmountCents,
		s.ActivatedAt, s.RenewsAt, s.CreatedAt, s.UpdatedAt,
	)
	return mapError(err)
}

func (r *subscriptionsRepo) GetSubscriptionByCompany(ctx context.Context, companyID string) (domain.Subscription, error) {
	var (
		s      domain.Subscription
		status string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, status, plan, amount_cents, activated_at, renews_at, created_at, updated_at
		FROM subscriptions WHERE company_id = $1`, companyID,
	).Scan(&s.ID, &s.CompanyID, &status, &s.Plan, &s.AmountCents, &s.ActivatedAt, &s.RenewsAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Subscription{}, mapError(err)
	}
	s.Status = domain.SubscriptionStatus(status)
	s.ActivatedAt, s.CreatedAt, s.UpdatedAt = utc(s.ActivatedAt), utc(s.CreatedAt), utc(s.UpdatedAt)
	s.RenewsAt = utcPtr(s.RenewsAt)
	return s, nil
}

func (r *subscriptionsRepo) UpdateSubscription(ctx context.Context, s domain.Subscription) error {
	return expectOne(r.q.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1, plan = $2, amount_cents = $3, activated_at = $4, renews_at = $5, updated_at = $6
		WHERE company_id = $7`,
		string(s.Status), s.Plan, s.AmountCents, s.ActivatedAt, s.RenewsAt, s.UpdatedAt, s.CompanyID,
	))
}
