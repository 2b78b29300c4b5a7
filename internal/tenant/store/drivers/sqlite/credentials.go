package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type credentialsRepo struct {
	q querier
}

const credentialColumns = `id, principal_id, company_id, platform, api_key, api_secret, access_token,
	active, last_sync_at, created_at, updated_at`

func scanCredential(row interface{ Scan(...any) error }) (domain.Credential, error) {
	var (
		c                    domain.Credential
		lastSync             sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &c.PrincipalID, &c.CompanyID, &c.Platform, &c.APIKey, &c.APISecret, &c.AccessToken,
		&c.Active, &lastSync, &createdAt, &updatedAt)
	if err != nil {
		return domain.Credential{}, mapError(err)
	}
	if c.LastSyncAt, err = parseTimePtr(lastSync); err != nil {
		return domain.Credential{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Credential{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Credential{}, err
	}
	return c, nil
}

func (r *credentialsRepo) UpsertCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO credentials (`+credentialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (principal_id, company_id, platform) DO UPDATE SET
			api_key = excluded.api_key,
			api_secret = excluded.api_secret,
			access_token = excluded.access_token,
			active = excluded.active,
			updated_at = excluded.updated_at`,
		c.ID, c.PrincipalID, c.CompanyID, c.Platform, c.APIKey, c.APISecret, c.AccessToken,
		c.Active, fmtTimePtr(c.LastSyncAt), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	return mapError(err)
}

func (r *credentialsRepo) GetCredential(ctx context.Context, principalID, companyID, platform string) (domain.Credential, error) {
	return scanCredential(r.q.QueryRowContext(ctx, `
		SELECT `+credentialColumns+` FROM credentials
		WHERE principal_id = ? AND company_id = ? AND platform = ?`,
		principalID, companyID, platform))
}

func (r *credentialsRepo) ListCredentials(ctx context.Context, principalID, companyID string) ([]domain.Credential, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+credentialColumns+` FROM credentials
		WHERE principal_id = ? AND company_id = ?
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
	return out, rows.Err()
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, principalID, companyID, platform string) error {
	return expectOne(r.q.ExecContext(ctx,
		`DELETE FROM credentials WHERE principal_id = ? AND company_id = ? AND platform = ?`,
		principalID, companyID, platform))
}

func (r *credentialsRepo) MarkCredentialSynced(ctx context.Context, principalID, companyID, platform string) error {
	ts := now()
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE credentials SET last_sync_at = ?, updated_at = ?
		WHERE principal_id = ? AND company_id = ? AND platform = ?`,
		ts, ts, principalID, companyID, platform))
}

func (r *credentialsRepo) DeleteCredentialsForPrincipal(ctx context.Context, principalID, companyID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM credentials WHERE principal_id = ? AND company_id = ?`, principalID, companyID)
	return mapError(err)
}
