package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// repositorios atados a esa tx. El bloqueo por fila (SELECT FOR UPDATE) de los
// repos más el Commit/Rollback aquí dan la serialización por ítem que exige el
// procesador de movimientos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapStoreErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreErr("commit transaction", err)
	}
	return nil
}

// RunAudit variante con el repositorio de auditorías para el flujo de conciliación.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	audits repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapStoreErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx), NewAuditRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreErr("commit transaction", err)
	}
	return nil
}
