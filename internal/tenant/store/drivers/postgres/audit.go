package postgres

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
	"github.com/jackc/pgx/v5"
)

// DefaultAuditPage is the page size when a filter sets no limit.
const DefaultAuditPage = 100

type auditRepo struct {
	q    querier
	inTx bool
}

const auditColumns = `id, company_id, principal_id, table_name, action, record_id,
	old_snapshot, new_snapshot, seq, prev_hash, hash, created_at`

func scanAudit(row pgx.Row) (domain.AuditRecord, error) {
	var (
		r             domain.AuditRecord
		action        string
		oldSnap, nSnp *string
	)
	err := row.Scan(&r.ID, &r.CompanyID, &r.PrincipalID, &r.Table, &action, &r.RecordID,
		&oldSnap, &nSnp, &r.Seq, &r.PrevHash, &r.Hash, &r.CreatedAt)
	if err != nil {
		return domain.AuditRecord{}, mapError(err)
	}
	r.Action = domain.AuditAction(action)
	if oldSnap != nil {
		r.OldSnapshot = json.RawMessage(*oldSnap)
	}
	if nSnp != nil {
		r.NewSnapshot = json.RawMessage(*nSnp)
	}
	r.CreatedAt = utc(r.CreatedAt)
	return r, nil
}

func snapshot(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	s := string(raw)
	return &s
}

func (r *auditRepo) AppendAudit(ctx context.Context, rec domain.AuditRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.CompanyID, rec.PrincipalID, rec.Table, string(rec.Action), rec.RecordID,
		snapshot(rec.OldSnapshot), snapshot(rec.NewSnapshot),
		rec.Seq, rec.PrevHash, rec.Hash, rec.CreatedAt,
	)
	return mapError(err)
}

// LastAudit takes a transaction-scoped advisory lock on the company's chain
// before reading the head. The lock is released at commit or rollback.
func (r *auditRepo) LastAudit(ctx context.Context, companyID string) (domain.AuditRecord, error) {
	if r.inTx {
		if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('audit_log:' || $1::text))`, companyID); err != nil {
			return domain.AuditRecord{}, mapError(err)
		}
	}
	return scanAudit(r.q.QueryRow(ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE company_id = $1 ORDER BY seq DESC LIMIT 1`, companyID))
}

func (r *auditRepo) ListAudit(ctx context.Context, companyID string, f domain.AuditFilter) ([]domain.AuditRecord, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultAuditPage
	}
	return r.list(ctx, `
		SELECT `+auditColumns+` FROM audit_log
		WHERE company_id = $1
		  AND ($2::text = '' OR table_name = $2)
		  AND ($3::bigint = 0 OR seq < $3)
		ORDER BY seq DESC
		LIMIT $4`,
		companyID, f.Table, f.BeforeSeq, limit,
	)
}

func (r *auditRepo) ListAllAudit(ctx context.Context, companyID string) ([]domain.AuditRecord, error) {
	return r.list(ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE company_id = $1 ORDER BY seq ASC`, companyID)
}

func (r *auditRepo) list(ctx context.Context, query string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.AuditRecord
	for rows.Next() {
		rec, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, mapError(rows.Err())
}

func (r *auditRepo) ListAuditCompanies(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT company_id FROM audit_log ORDER BY company_id`)
	if err != nil {
		return nil, mapError(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, mapError(err)
}
