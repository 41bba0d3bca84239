package memory

import (
	"context"
	"sort"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*budgetRepo)(nil)

// budgetRepo partidas presupuestales en memoria (solo lectura para el núcleo).
type budgetRepo struct {
	s    *Store
	lock bool
}

func (r *budgetRepo) locked(fn func()) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	fn()
}

func (r *budgetRepo) GetByID(ctx context.Context, id string) (*entity.BudgetLineItem, error) {
	var out *entity.BudgetLineItem
	r.locked(func() {
		if b, ok := r.s.budgets[id]; ok {
			out = &b
		}
	})
	return out, nil
}

func (r *budgetRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.BudgetLineItem, error) {
	var list []*entity.BudgetLineItem
	r.locked(func() {
		for _, b := range r.s.budgets {
			if b.ProjectID == projectID {
				line := b
				list = append(list, &line)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}
