package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*movementRepo)(nil)

// movementRepo kardex en memoria, append-only.
type movementRepo struct {
	s    *Store
	lock bool
}

func (r *movementRepo) locked(fn func()) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	fn()
}

func (r *movementRepo) CreateDocument(ctx context.Context, doc *entity.MovementDocument) error {
	r.locked(func() {
		r.s.docs = append(r.s.docs, *doc)
	})
	return nil
}

func (r *movementRepo) GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error) {
	var out *entity.MovementDocument
	r.locked(func() {
		for i := range r.s.docs {
			if r.s.docs[i].ID == id {
				doc := r.s.docs[i]
				out = &doc
				return
			}
		}
	})
	return out, nil
}

func (r *movementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.MovementDocument, error) {
	var list []*entity.MovementDocument
	r.locked(func() {
		for i := range r.s.docs {
			doc := r.s.docs[i]
			if from != nil && doc.Date.Before(*from) {
				continue
			}
			if to != nil && doc.Date.After(*to) {
				continue
			}
			for _, line := range doc.Lines {
				if line.ItemID == itemID {
					d := doc
					list = append(list, &d)
					break
				}
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return paginate(list, limit, offset), nil
}

func (r *movementRepo) SumQuantityByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.locked(func() {
		for _, doc := range r.s.docs {
			for _, line := range doc.Lines {
				if line.ItemID == itemID {
					sum = sum.Add(line.Quantity)
				}
			}
		}
	})
	return sum, nil
}

func (r *movementRepo) AccumulatedConsumption(ctx context.Context, budgetLineID string) (repository.ConsumptionAccumulated, error) {
	acc := repository.ConsumptionAccumulated{Quantity: decimal.Zero, Cost: decimal.Zero}
	r.locked(func() {
		for _, doc := range r.s.docs {
			if doc.Class != entity.MovementClassConsumption {
				continue
			}
			for _, line := range doc.Lines {
				if line.BudgetLineID != nil && *line.BudgetLineID == budgetLineID {
					acc.Quantity = acc.Quantity.Add(line.Quantity.Abs())
					acc.Cost = acc.Cost.Add(line.Amount.Abs())
				}
			}
		}
	})
	return acc, nil
}
