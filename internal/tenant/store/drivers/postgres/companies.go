package postgres

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

type companiesRepo struct {
	q querier
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO companies (id, name, document, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	return mapError(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var c domain.Company
	err := r.q.QueryRow(ctx, `
		SELECT id, name, document, email, phone, address, created_at, updated_at
		FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Company{}, mapError(err)
	}
	c.CreatedAt, c.UpdatedAt = utc(c.CreatedAt), utc(c.UpdatedAt)
	return c, nil
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	return expectOne(r.q.Exec(ctx, `
		UPDATE companies
		SET name = $1, document = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $7`,
		c.Name, c.Document, c.Email, c.Phone, c.Address, c.UpdatedAt, c.ID,
	))
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	return expectOne(r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id))
}
