package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/jackc/pgx/v5"
)

type credentialsRepo struct {
	q querier
}

const credentialColumns = `id, principal_id, company_id, platform, api_key, api_secret, access_token,
	active, last_sync_at, created_at, updated_at`

func scanCredential(row pgx.Row) (domain.Credential, error) {
	var c domain.Credential
	err := row.Scan(&c.ID, &c.PrincipalID, &c.CompanyID, &c.Platform, &c.APIKey, &c.APISecret, &c.AccessToken,
		&c.Active, &c.LastSyncAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Credential{}, mapError(err)
	}
	c.LastSyncAt = utcPtr(c.LastSyncAt)
	c.CreatedAt, c.UpdatedAt = utc(c.CreatedAt), utc(c.UpdatedAt)
	return c, nil
}

func (r *credentialsRepo) UpsertCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO credentials (`+credentialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (principal_id, company_id, platform) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			api_secret = EXCLUDED.api_secret,
			access_token = EXCLUDED.access_token,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.PrincipalID, c.CompanyID, c.Platform, c.APIKey, c.APISecret, c.AccessToken,
		c.Active, c.LastSyncAt, c.CreatedAt, c.UpdatedAt,
	)
	return mapError(err)
}

func (r *credentialsRepo) GetCredential(ctx context.Context, principalID, companyID, platform string) (domain.Credential, error) {
	return scanCredential(r.q.QueryRow(ctx, `
		SELECT `+credentialColumns+` FROM credentials
		WHERE principal_id = $1 AND company_id = $2 AND platform = $3`,
		principalID, companyID, platform))
}

func (r *credentialsRepo) ListCredentials(ctx context.Context, principalID, companyID string) ([]domain.Credential, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+credentialColumns+` FROM credentials
		WHERE principal_id = $1 AND company_id = $2
		ORDER BY platform`,
		principalID, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err())
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, principalID, companyID, platform string) error {
	return expectOne(r.q.Exec(ctx,
		`DELETE FROM credentials WHERE principal_id = $1 AND company_id = $2 AND platform = $3`,
		principalID, companyID, platform))
}

func (r *credentialsRepo) MarkCredentialSynced(ctx context.Context, principalID, companyID, platform string) error {
	ts := now()
	return expectOne(r.q.Exec(ctx, `
		UPDATE credentials SET last_sync_at = $1, updated_at = $1
		WHERE principal_id = $2 AND company_id = $3 AND platform = $4`,
		ts, principalID, companyID, platform))
}

func (r *credentialsRepo) DeleteCredentialsForPrincipal(ctx context.Context, principalID, companyID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM credentials WHERE principal_id = $1 AND company_id = $2`, principalID, companyID)
	return mapError(err)
}
