package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo lectura de partidas presupuestales sobre PostgreSQL.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador.
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

// GetByID obtiene una partida por ID; nil si no existe.
func (r *BudgetRepo) GetByID(ctx context.Context, id string) (*entity.BudgetLineItem, error) {
	query := `
		SELECT id, project_id, code, description, budgeted_quantity, budgeted_unit_price, unit
		FROM budget_line_items WHERE id = $1`
	var b entity.BudgetLineItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ProjectID, &b.Code, &b.Description, &b.BudgetedQuantity, &b.BudgetedUnitPrice, &b.Unit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get budget line", err)
	}
	return &b, nil
}

// ListByProject partidas de un proyecto ordenadas por código.
func (r *BudgetRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.BudgetLineItem, error) {
	query := `
		SELECT id, project_id, code, description, budgeted_quantity, budgeted_unit_price, unit
		FROM budget_line_items WHERE project_id = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, wrapStoreErr("list budget lines", err)
	}
	defer rows.Close()
	var list []*entity.BudgetLineItem
	for rows.Next() {
		var b entity.BudgetLineItem
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Code, &b.Description, &b.BudgetedQuantity, &b.BudgetedUnitPrice, &b.Unit); err != nil {
			return nil, wrapStoreErr("scan budget line", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
