package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, unit, category, available_quantity, weighted_average_cost,
	reorder_point, max_stock, specs, owned, purchase_value, residual_value,
	useful_life_months, book_value, COALESCE(last_depreciation_period, ''), created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var specs []byte
	err := row.Scan(
		&it.ID, &it.Name, &it.Unit, &it.Category, &it.AvailableQuantity, &it.WeightedAverageCost,
		&it.ReorderPoint, &it.MaxStock, &specs, &it.Owned, &it.PurchaseValue, &it.ResidualValue,
		&it.UsefulLifeMonths, &it.BookValue, &it.LastDepreciationPeriod, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if it.Specs, err = entity.UnmarshalSpecs(specs); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un ítem por ID; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get item", err)
	}
	return it, nil
}

// GetForUpdate relee el ítem y bloquea la fila (SELECT FOR UPDATE) para
// serializar los commits concurrentes sobre el mismo ítem.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get item for update", err)
	}
	return it, nil
}

// UpdateStock escribe la cantidad disponible y el costo promedio nuevos.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, quantity, wac decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET available_quantity = $2, weighted_average_cost = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, wac)
	if err != nil {
		return wrapStoreErr("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: ítem %s no existe", id)
	}
	return nil
}

// List lista el catálogo paginado.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("list items", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListBelowReorderPoint ítems con disponible <= punto de reorden, mayor déficit primero.
func (r *ItemRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE available_quantity <= reorder_point AND reorder_point > 0
		ORDER BY (reorder_point - available_quantity) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("list below reorder point", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListDepreciable maquinaria propia con vida útil definida.
func (r *ItemRepo) ListDepreciable(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE category = $1 AND owned AND useful_life_months > 0
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, entity.CategoryMachinery)
	if err != nil {
		return nil, wrapStoreErr("list depreciable", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// UpdateDepreciation escribe el valor en libros nuevo y marca el período.
// La cláusula sobre last_depreciation_period refuerza la idempotencia también
// a nivel de fila ante dos corridas simultáneas.
func (r *ItemRepo) UpdateDepreciation(ctx context.Context, id string, bookValue decimal.Decimal, period string) error {
	query := `
		UPDATE inventory_items
		SET book_value = $2, last_depreciation_period = $3, updated_at = now()
		WHERE id = $1 AND (last_depreciation_period IS NULL OR last_depreciation_period <> $3)`
	if _, err := r.q.Exec(ctx, query, id, bookValue, period); err != nil {
		return wrapStoreErr("update depreciation", err)
	}
	return nil
}

// StorageClassesAt clases de almacenamiento de los ítems con existencia neta
// positiva en la ubicación (derivada de las líneas de kardex).
func (r *ItemRepo) StorageClassesAt(ctx context.Context, locationID string) ([]entity.StorageClass, error) {
	query := `
		SELECT DISTINCT i.specs
		FROM inventory_items i
		JOIN (
			SELECT item_id FROM movement_lines
			WHERE location_id = $1
			GROUP BY item_id
			HAVING SUM(quantity) > 0
		) l ON l.item_id = i.id`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, wrapStoreErr("storage classes at", err)
	}
	defer rows.Close()

	seen := make(map[entity.StorageClass]bool)
	var classes []entity.StorageClass
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, wrapStoreErr("scan specs", err)
		}
		class := entity.StorageInert
		if specs, err := entity.UnmarshalSpecs(raw); err == nil && specs != nil {
			class = specs.Storage()
		}
		if !seen[class] {
			seen[class] = true
			classes = append(classes, class)
		}
	}
	return classes, rows.Err()
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapStoreErr("scan item", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
