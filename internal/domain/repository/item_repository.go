package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia del catálogo de ítems y su caché de
// cantidad/costo. Las mutaciones de stock solo ocurren dentro de una transacción
// (vía TxRunner) usando GetForUpdate para serializar commits por ítem.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)

	// GetForUpdate relee el ítem y bloquea la fila (SELECT FOR UPDATE) dentro
	// de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// UpdateStock escribe la cantidad disponible y el costo promedio nuevos.
	UpdateStock(ctx context.Context, id string, quantity, wac decimal.Decimal) error

	// ListBelowReorderPoint ítems con disponible <= punto de reorden,
	// ordenados por mayor déficit primero.
	ListBelowReorderPoint(ctx context.Context) ([]*entity.InventoryItem, error)

	// ListDepreciable activos propios con vida útil definida.
	ListDepreciable(ctx context.Context) ([]*entity.InventoryItem, error)
	// UpdateDepreciation escribe el valor en libros nuevo y marca el período procesado.
	UpdateDepreciation(ctx context.Context, id string, bookValue decimal.Decimal, period string) error

	// StorageClassesAt clases de almacenamiento de los ítems con existencia en la ubicación.
	StorageClassesAt(ctx context.Context, locationID string) ([]entity.StorageClass, error)
}
