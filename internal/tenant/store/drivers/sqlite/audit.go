package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

// DefaultAuditPage is the page size when a filter sets no limit.
const DefaultAuditPage = 100

type auditRepo struct {
	q querier
}

const auditColumns = `id, company_id, principal_id, table_name, action, record_id,
	old_snapshot, new_snapshot, seq, prev_hash, hash, created_at`

func scanAudit(row interface{ Scan(...any) error }) (domain.AuditRecord, error) {
	var (
		r             domain.AuditRecord
		action        string
		oldSnap, nSnp sql.NullString
		createdAt     string
	)
	err := row.Scan(&r.ID, &r.CompanyID, &r.PrincipalID, &r.Table, &action, &r.RecordID,
		&oldSnap, &nSnp, &r.Seq, &r.PrevHash, &r.Hash, &createdAt)
	if err != nil {
		return domain.AuditRecord{}, mapError(err)
	}
	r.Action = domain.AuditAction(action)
	if oldSnap.Valid {
		r.OldSnapshot = json.RawMessage(oldSnap.String)
	}
	if nSnp.Valid {
		r.NewSnapshot = json.RawMessage(nSnp.String)
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.AuditRecord{}, err
	}
	return r, nil
}

func snapshot(raw json.RawMessage) sql.NullString {
	if raw == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func (r *auditRepo) AppendAudit(ctx context.Context, rec domain.AuditRecord) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, rec.PrincipalID, rec.Table, string(rec.Action), rec.RecordID,
		snapshot(rec.OldSnapshot), snapshot(rec.NewSnapshot),
		rec.Seq, rec.PrevHash, rec.Hash, fmtTime(rec.CreatedAt),
	)
	return mapError(err)
}

// LastAudit relies on BEGIN IMMEDIATE for exclusivity; see CountAdmins.
func (r *auditRepo) LastAudit(ctx context.Context, companyID string) (domain.AuditRecord, error) {
	return scanAudit(r.q.QueryRowContext(ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE company_id = ? ORDER BY seq DESC LIMIT 1`, companyID))
}

func (r *auditRepo) ListAudit(ctx context.Context, companyID string, f domain.AuditFilter) ([]domain.AuditRecord, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultAuditPage
	}
	return r.list(ctx, `
		SELECT `+auditColumns+` FROM audit_log
		WHERE company_id = ?
		  AND (? = '' OR table_name = ?)
		  AND (? = 0 OR seq < ?)
		ORDER BY seq DESC
		LIMIT ?`,
		companyID, f.Table, f.Table, f.BeforeSeq, f.BeforeSeq, limit,
	)
}

func (r *auditRepo) ListAllAudit(ctx context.Context, companyID string) ([]domain.AuditRecord, error) {
	return r.list(ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE company_id = ? ORDER BY seq ASC`, companyID)
}

func (r *auditRepo) list(ctx context.Context, query string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
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
	return out, rows.Err()
}

func (r *auditRepo) ListAuditCompanies(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT DISTINCT company_id FROM audit_log ORDER BY company_id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
