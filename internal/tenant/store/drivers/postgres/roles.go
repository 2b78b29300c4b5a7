package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/jackc/pgx/v5"
)

type rolesRepo struct {
	q    querier
	inTx bool
}

const assignmentColumns = `id, principal_id, company_id, role, created_at, updated_at`

func scanAssignment(row pgx.Row) (domain.RoleAssignment, error) {
	var (
		a    domain.RoleAssignment
		role string
	)
	if err := row.Scan(&a.ID, &a.PrincipalID, &a.CompanyID, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.RoleAssignment{}, mapError(err)
	}
	a.Role = domain.Role(role)
	a.CreatedAt, a.UpdatedAt = utc(a.CreatedAt), utc(a.UpdatedAt)
	return a, nil
}

func (r *rolesRepo) CreateAssignment(ctx context.Context, a domain.RoleAssignment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO role_assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PrincipalID, a.CompanyID, string(a.Role), a.CreatedAt, a.UpdatedAt,
	)
	return mapError(err)
}

func (r *rolesRepo) GetAssignmentByPrincipal(ctx context.Context, principalID string) (domain.RoleAssignment, error) {
	return scanAssignment(r.q.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM role_assignments WHERE principal_id = $1`, principalID))
}

func (r *rolesRepo) ListAssignmentsByCompany(ctx context.Context, companyID string) ([]domain.RoleAssignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+assignmentColumns+` FROM role_assignments WHERE company_id = $1 ORDER BY created_at, id`, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.RoleAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, mapError(rows.Err())
}

func (r *rolesRepo) UpdateAssignmentRole(ctx context.Context, companyID, principalID string, role domain.Role) error {
	return expectOne(r.q.Exec(ctx, `
		UPDATE role_assignments SET role = $1, updated_at = $2
		WHERE company_id = $3 AND principal_id = $4`,
		string(role), now(), companyID, principalID,
	))
}

func (r *rolesRepo) DeleteAssignment(ctx context.Context, companyID, principalID string) error {
	return expectOne(r.q.Exec(ctx,
		`DELETE FROM role_assignments WHERE company_id = $1 AND principal_id = $2`, companyID, principalID))
}

// CountAdmins locks the admin rows when called in a transaction. A
// concurrent demotion blocks on the lock, then re-evaluates the WHERE
// clause and no longer counts the row it lost. Rows lock in id order so
// two counters cannot deadlock each other.
func (r *rolesRepo) CountAdmins(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM role_assignments WHERE company_id = $1 AND role = 'admin'`
	if r.inTx {
		query = `
			SELECT COUNT(*) FROM (
				SELECT id FROM role_assignments
				WHERE company_id = $1 AND role = 'admin'
				ORDER BY id
				FOR UPDATE
			) AS admins`
	}

	var n int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}
