package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type rolesRepo struct {
	q querier
}

const assignmentColumns = `id, principal_id, company_id, role, created_at, updated_at`

func scanAssignment(row interface{ Scan(...any) error }) (domain.RoleAssignment, error) {
	var (
		a                    domain.RoleAssignment
		role                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.PrincipalID, &a.CompanyID, &role, &createdAt, &updatedAt); err != nil {
		return domain.RoleAssignment{}, mapError(err)
	}
	a.Role = domain.Role(role)

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.RoleAssignment{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.RoleAssignment{}, err
	}
	return a, nil
}

func (r *rolesRepo) CreateAssignment(ctx context.Context, a domain.RoleAssignment) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO role_assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.PrincipalID, a.CompanyID, string(a.Role), fmtTime(a.CreatedAt), fmtTime(a.UpdatedAt),
	)
	return mapError(err)
}

func (r *rolesRepo) GetAssignmentByPrincipal(ctx context.Context, principalID string) (domain.RoleAssignment, error) {
	return scanAssignment(r.q.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM role_assignments WHERE principal_id = ?`, principalID))
}

func (r *rolesRepo) ListAssignmentsByCompany(ctx context.Context, companyID string) ([]domain.RoleAssignment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM role_assignments WHERE company_id = ? ORDER BY created_at, id`, companyID)
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
	return out, rows.Err()
}

func (r *rolesRepo) UpdateAssignmentRole(ctx context.Context, companyID, principalID string, role domain.Role) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE role_assignments SET role = ?, updated_at = ?
		WHERE company_id = ? AND principal_id = ?`,
		string(role), now(), companyID, principalID,
	))
}

func (r *rolesRepo) DeleteAssignment(ctx context.Context, companyID, principalID string) error {
	return expectOne(r.q.ExecContext(ctx,
		`DELETE FROM role_assignments WHERE company_id = ? AND principal_id = ?`, companyID, principalID))
}

// CountAdmins needs no explicit lock: every sqlite transaction here is
// BEGIN IMMEDIATE, so writers are already serialised.
func (r *rolesRepo) CountAdmins(ctx context.Context, companyID string) (int, error) {
	var n sql.NullInt64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM role_assignments WHERE company_id = ? AND role = 'admin'`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return int(n.Int64), nil
}
