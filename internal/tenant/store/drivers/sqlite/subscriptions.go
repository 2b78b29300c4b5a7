package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type subscriptionsRepo struct {
	q querier
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO subscriptions (id, company_id, status, plan, amount_cents, activated_at, renews_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CompanyID, string(s.Status), s.Plan, s.AmountCents,
		fmtTime(s.ActivatedAt), fmtTimePtr(s.RenewsAt), fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)
	return mapError(err)
}

func (r *subscriptionsRepo) GetSubscriptionByCompany(ctx context.Context, companyID string) (domain.Subscription, error) {
	var (
		s                                 domain.Subscription
		status                            string
		activatedAt, createdAt, updatedAt string
		renewsAt                          sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, company_id, status, plan, amount_cents, activated_at, renews_at, created_at, updated_at
		FROM subscriptions WHERE company_id = ?`, companyID,
	).Scan(&s.ID, &s.CompanyID, &status, &s.Plan, &s.AmountCents, &activatedAt, &renewsAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Subscription{}, mapError(err)
	}
	s.Status = domain.SubscriptionStatus(status)

	if s.ActivatedAt, err = parseTime(activatedAt); err != nil {
		return domain.Subscription{}, err
	}
	if s.RenewsAt, err = parseTimePtr(renewsAt); err != nil {
		return domain.Subscription{}, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Subscription{}, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Subscription{}, err
	}
	return s, nil
}

func (r *subscriptionsRepo) UpdateSubscription(ctx context.Context, s domain.Subscription) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = ?, plan = ?, amount_cents = ?, activated_at = ?, renews_at = ?, updated_at = ?
		WHERE company_id = ?`,
		string(s.Status), s.Plan, s.AmountCents, fmtTime(s.ActivatedAt), fmtTimePtr(s.RenewsAt),
		fmtTime(s.UpdatedAt), s.CompanyID,
	))
}
