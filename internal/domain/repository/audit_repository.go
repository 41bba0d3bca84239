package repository

import (
	"context"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// AuditRepository puerto de persistencia de auditorías y ajustes.
// Los AuditRecord solo transicionan de estado (CONFLICT → ADJUSTED); los
// Adjustment se crean una única vez por auditoría resuelta.
type AuditRepository interface {
	CreateAudit(ctx context.Context, audit *entity.AuditRecord) error
	GetAudit(ctx context.Context, id string) (*entity.AuditRecord, error)
	// GetAuditForUpdate bloquea el registro dentro de la transacción en curso
	// para que dos ajustes concurrentes de la misma auditoría se serialicen.
	GetAuditForUpdate(ctx context.Context, id string) (*entity.AuditRecord, error)
	UpdateAuditStatus(ctx context.Context, id, status string) error
	// ListAudits más recientes primero; itemID vacío lista todas.
	ListAudits(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditRecord, error)

	CreateAdjustment(ctx context.Context, adj *entity.Adjustment) error
	GetAdjustmentByAudit(ctx context.Context, auditID string) (*entity.Adjustment, error)
}
