package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*itemRepo)(nil)

// itemRepo adaptador de ítems. Con lock=false opera dentro de una transacción
// que ya sostiene el mutex del Store.
type itemRepo struct {
	s    *Store
	lock bool
}

func (r *itemRepo) locked(fn func()) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	fn()
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.locked(func() {
		if it, ok := r.s.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex de la transacción ya
// serializa los commits concurrentes.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) UpdateStock(ctx context.Context, id string, quantity, wac decimal.Decimal) error {
	r.locked(func() {
		if it, ok := r.s.items[id]; ok {
			it.AvailableQuantity = quantity
			it.WeightedAverageCost = wac
			r.s.items[id] = it
		}
	})
	return nil
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	r.locked(func() {
		for _, it := range r.s.items {
			item := it
			list = append(list, &item)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

func (r *itemRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	r.locked(func() {
		for _, it := range r.s.items {
			if it.ReorderPoint.IsPositive() && it.AvailableQuantity.LessThanOrEqual(it.ReorderPoint) {
				item := it
				list = append(list, &item)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		defI := list[i].ReorderPoint.Sub(list[i].AvailableQuantity)
		defJ := list[j].ReorderPoint.Sub(list[j].AvailableQuantity)
		return defI.GreaterThan(defJ)
	})
	return list, nil
}

func (r *itemRepo) ListDepreciable(ctx context.Context) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	r.locked(func() {
		for _, it := range r.s.items {
			if it.Depreciable() {
				item := it
				list = append(list, &item)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *itemRepo) UpdateDepreciation(ctx context.Context, id string, bookValue decimal.Decimal, period string) error {
	r.locked(func() {
		if it, ok := r.s.items[id]; ok && it.LastDepreciationPeriod != period {
			it.BookValue = bookValue
			it.LastDepreciationPeriod = period
			r.s.items[id] = it
		}
	})
	return nil
}

func (r *itemRepo) StorageClassesAt(ctx context.Context, locationID string) ([]entity.StorageClass, error) {
	var classes []entity.StorageClass
	r.locked(func() {
		// Existencia neta por ítem en la ubicación, derivada del kardex.
		net := make(map[string]decimal.Decimal)
		for _, doc := range r.s.docs {
			for _, line := range doc.Lines {
				if line.LocationID == locationID {
					net[line.ItemID] = net[line.ItemID].Add(line.Quantity)
				}
			}
		}
		seen := make(map[entity.StorageClass]bool)
		ids := make([]string, 0, len(net))
		for id := range net {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if !net[id].IsPositive() {
				continue
			}
			class := entity.StorageInert
			if it, ok := r.s.items[id]; ok && it.Specs != nil {
				class = it.Specs.Storage()
			}
			if !seen[class] {
				seen[class] = true
				classes = append(classes, class)
			}
		}
	})
	return classes, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
