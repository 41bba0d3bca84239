package memory

import (
	"context"
	"sort"

	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*auditRepo)(nil)

// auditRepo auditorías y ajustes en memoria.
type auditRepo struct {
	s    *Store
	lock bool
}

func (r *auditRepo) locked(fn func()) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	fn()
}

func (r *auditRepo) CreateAudit(ctx context.Context, audit *entity.AuditRecord) error {
	r.locked(func() {
		r.s.audits[audit.ID] = *audit
	})
	return nil
}

func (r *auditRepo) GetAudit(ctx context.Context, id string) (*entity.AuditRecord, error) {
	var out *entity.AuditRecord
	r.locked(func() {
		if a, ok := r.s.audits[id]; ok {
			out = &a
		}
	})
	return out, nil
}

// GetAuditForUpdate en memoria equivale a GetAudit bajo el mutex de la tx.
func (r *auditRepo) GetAuditForUpdate(ctx context.Context, id string) (*entity.AuditRecord, error) {
	return r.GetAudit(ctx, id)
}

func (r *auditRepo) UpdateAuditStatus(ctx context.Context, id, status string) error {
	r.locked(func() {
		if a, ok := r.s.audits[id]; ok {
			a.Status = status
			r.s.audits[id] = a
		}
	})
	return nil
}

func (r *auditRepo) ListAudits(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditRecord, error) {
	var list []*entity.AuditRecord
	r.locked(func() {
		for _, a := range r.s.audits {
			if itemID != "" && a.ItemID != itemID {
				continue
			}
			audit := a
			list = append(list, &audit)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *auditRepo) CreateAdjustment(ctx context.Context, adj *entity.Adjustment) error {
	var err error
	r.locked(func() {
		if adj.AuditID != nil {
			for _, existing := range r.s.adjustments {
				if existing.AuditID != nil && *existing.AuditID == *adj.AuditID {
					err = domain.ErrDuplicate
					return
				}
			}
		}
		r.s.adjustments[adj.ID] = *adj
	})
	return err
}

func (r *auditRepo) GetAdjustmentByAudit(ctx context.Context, auditID string) (*entity.Adjustment, error) {
	var out *entity.Adjustment
	r.locked(func() {
		for _, a := range r.s.adjustments {
			if a.AuditID != nil && *a.AuditID == auditID {
				adj := a
				out = &adj
				return
			}
		}
	})
	return out, nil
}
