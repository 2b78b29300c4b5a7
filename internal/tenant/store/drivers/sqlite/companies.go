package sqlite

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type companiesRepo struct {
	q querier
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO companies (id, name, document, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.Address, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	return mapError(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var (
		c                    domain.Company
		createdAt, updatedAt string
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, document, email, phone, address, created_at, updated_at
		FROM companies WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address, &createdAt, &updatedAt)
	if err != nil {
		return domain.Company{}, mapError(err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Company{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE companies
		SET name = ?, document = ?, email = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Document, c.Email, c.Phone, c.Address, fmtTime(c.UpdatedAt), c.ID,
	))
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	return expectOne(r.q.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id))
}
