package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type profilesRepo struct {
	q querier
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO profiles (principal_id, company_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (principal_id) DO UPDATE
		SET company_id = EXCLUDED.company_id, updated_at = EXCLUDED.updated_at`,
		p.PrincipalID, p.CompanyID, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *profilesRepo) GetProfile(ctx context.Context, principalID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.q.QueryRow(ctx,
		`SELECT principal_id, company_id, updated_at FROM profiles WHERE principal_id = $1`, principalID,
	).Scan(&p.PrincipalID, &p.CompanyID, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, mapError(err)
	}
	p.UpdatedAt = utc(p.UpdatedAt)
	return p, nil
}
