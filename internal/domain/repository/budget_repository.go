package repository

import (
	"context"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// BudgetRepository puerto de lectura de partidas presupuestales.
// El presupuesto se carga por fuera; el núcleo solo lo consulta.
type BudgetRepository interface {
	GetByID(ctx context.Context, id string) (*entity.BudgetLineItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.BudgetLineItem, error)
}
