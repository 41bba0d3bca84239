package inventory

import (
	"context"

	"github.com/construplan/construplan-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que documento, líneas y caché de
// stock se escriben como una sola unidad atómica: o todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error

	// RunAudit variante con el repositorio de auditorías para el flujo de
	// conciliación (el ajuste pasa por el mismo camino atómico que un movimiento).
	RunAudit(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		audits repository.AuditRepository,
	) error) error
}
