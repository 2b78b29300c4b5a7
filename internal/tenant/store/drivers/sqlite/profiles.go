package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type profilesRepo struct {
	q querier
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO profiles (principal_id, company_id, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (principal_id) DO UPDATE
		SET company_id = excluded.company_id, updated_at = excluded.updated_at`,
		p.PrincipalID, nullString(p.CompanyID), fmtTime(p.UpdatedAt),
	)
	return mapError(err)
}

func (r *profilesRepo) GetProfile(ctx context.Context, principalID string) (domain.Profile, error) {
	var (
		p         domain.Profile
		companyID sql.NullString
		updatedAt string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT principal_id, company_id, updated_at FROM profiles WHERE principal_id = ?`, principalID,
	).Scan(&p.PrincipalID, &companyID, &updatedAt)
	if err != nil {
		return domain.Profile{}, mapError(err)
	}
	p.CompanyID = stringPtr(companyID)
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}
