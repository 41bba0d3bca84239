package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo persistencia de auditorías y ajustes sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

const auditColumns = `id, item_id, counted_quantity, system_qty_snapshot, status, COALESCE(counted_by, ''), created_at`

// CreateAudit inserta un registro de conteo.
func (r *AuditRepo) CreateAudit(ctx context.Context, audit *entity.AuditRecord) error {
	query := `
		INSERT INTO audit_records (id, item_id, counted_quantity, system_qty_snapshot, status, counted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		audit.ID, audit.ItemID, audit.CountedQuantity, audit.SystemQtySnapshot,
		audit.Status, nullable(audit.CountedBy), audit.CreatedAt,
	)
	return wrapStoreErr("create audit", err)
}

func (r *AuditRepo) scanAudit(row pgx.Row) (*entity.AuditRecord, error) {
	var a entity.AuditRecord
	err := row.Scan(&a.ID, &a.ItemID, &a.CountedQuantity, &a.SystemQtySnapshot, &a.Status, &a.CountedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAudit obtiene una auditoría por ID; nil si no existe.
func (r *AuditRepo) GetAudit(ctx context.Context, id string) (*entity.AuditRecord, error) {
	a, err := r.scanAudit(r.q.QueryRow(ctx, `SELECT `+auditColumns+` FROM audit_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get audit", err)
	}
	return a, nil
}

// GetAuditForUpdate bloquea el registro de auditoría dentro de la tx en curso.
func (r *AuditRepo) GetAuditForUpdate(ctx context.Context, id string) (*entity.AuditRecord, error) {
	a, err := r.scanAudit(r.q.QueryRow(ctx, `SELECT `+auditColumns+` FROM audit_records WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get audit for update", err)
	}
	return a, nil
}

// UpdateAuditStatus transición de estado (CONFLICT → ADJUSTED).
func (r *AuditRepo) UpdateAuditStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE audit_records SET status = $2 WHERE id = $1`, id, status)
	return wrapStoreErr("update audit status", err)
}

// ListAudits auditorías más recientes primero; itemID vacío lista todas.
func (r *AuditRepo) ListAudits(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE ($1 = '' OR item_id = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("list audits", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		a, err := r.scanAudit(rows)
		if err != nil {
			return nil, wrapStoreErr("scan audit", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CreateAdjustment inserta un ajuste. El constraint único sobre audit_id
// garantiza a nivel de fila un solo ajuste por auditoría resuelta.
func (r *AuditRepo) CreateAdjustment(ctx context.Context, adj *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (id, item_id, audit_id, type, quantity, reason, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.ItemID, adj.AuditID, adj.Type, adj.Quantity,
		adj.Reason, adj.Status, nullable(adj.CreatedBy), adj.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return wrapStoreErr("create adjustment", err)
}

// GetAdjustmentByAudit ajuste asociado a una auditoría; nil si no existe.
func (r *AuditRepo) GetAdjustmentByAudit(ctx context.Context, auditID string) (*entity.Adjustment, error) {
	query := `
		SELECT id, item_id, audit_id, type, quantity, reason, status, COALESCE(created_by, ''), created_at
		FROM adjustments WHERE audit_id = $1`
	var a entity.Adjustment
	err := r.q.QueryRow(ctx, query, auditID).Scan(
		&a.ID, &a.ItemID, &a.AuditID, &a.Type, &a.Quantity, &a.Reason, &a.Status, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get adjustment by audit", err)
	}
	return &a, nil
}
