package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// UseCase motor de conciliación de auditoría: recibe conteos físicos, los
// compara contra la cantidad en libros y aplica el ajuste correctivo por el
// mismo camino atómico que cualquier movimiento de kardex.
type UseCase struct {
	txRunner  appinventory.TxRunner
	itemRepo  repository.ItemRepository
	auditRepo repository.AuditRepository
}

// NewUseCase construye el motor de conciliación.
func NewUseCase(txRunner appinventory.TxRunner, itemRepo repository.ItemRepository, auditRepo repository.AuditRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, auditRepo: auditRepo}
}

// SubmitCount registra un conteo físico. Captura la cantidad en libros al
// momento del conteo (snapshot, no se relee después): RECONCILED si coincide,
// CONFLICT si difiere. Un conteo que coincide no muta nada más.
func (uc *UseCase) SubmitCount(ctx context.Context, itemID string, counted decimal.Decimal, countedBy string) (*entity.AuditRecord, error) {
	if counted.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	status := entity.AuditStatusConflict
	if counted.Equal(item.AvailableQuantity) {
		status = entity.AuditStatusReconciled
	}
	record := &entity.AuditRecord{
		ID:                uuid.New().String(),
		ItemID:            itemID,
		CountedQuantity:   counted,
		SystemQtySnapshot: item.AvailableQuantity,
		Status:            status,
		CountedBy:         countedBy,
		CreatedAt:         time.Now(),
	}
	if err := uc.auditRepo.CreateAudit(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ApplyAdjustment resuelve una auditoría en CONFLICT aplicando el ajuste
// (merma o sobrante) calculado contra el snapshot del conteo.
//
// Política de concurrencia: si la cantidad en libros cambió entre el conteo y
// el ajuste (otro movimiento aterrizó primero), el ajuste se RECHAZA con
// AuditDriftError en lugar de anclarse al snapshot. Anclarse al snapshot
// pisaría silenciosamente consumos legítimos intermedios; aquí el conteo debe
// repetirse. El delta se aplica dentro de la misma transacción que relee y
// bloquea el ítem, como documento OTHER, así el ajuste queda en el kardex
// igual que cualquier movimiento.
func (uc *UseCase) ApplyAdjustment(ctx context.Context, auditID, reason, responsibleID string) (*entity.Adjustment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var adjustment *entity.Adjustment
	err := uc.txRunner.RunAudit(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		audits repository.AuditRepository,
	) error {
		record, err := audits.GetAuditForUpdate(ctx, auditID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if record.Status != entity.AuditStatusConflict {
			return domain.ErrConflict
		}

		item, err := items.GetForUpdate(ctx, record.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.AvailableQuantity.Equal(record.SystemQtySnapshot) {
			return &domain.AuditDriftError{
				AuditID:  auditID,
				ItemID:   record.ItemID,
				Snapshot: record.SystemQtySnapshot,
				Current:  item.AvailableQuantity,
			}
		}

		diff := record.CountedQuantity.Sub(record.SystemQtySnapshot)
		adjType := entity.AdjustmentSurplus
		if diff.IsNegative() {
			adjType = entity.AdjustmentShrinkage
		}

		now := time.Now()
		// El ajuste entra al kardex como documento OTHER con el folio de la
		// auditoría como referencia: indistinguible de un movimiento normal
		// para auditorías futuras.
		_, err = appinventory.CommitDocumentInTx(ctx, items, movements, appinventory.MovementInput{
			Class:         entity.MovementClassOther,
			Reference:     record.ID,
			ResponsibleID: responsibleID,
			Remark:        reason,
			Lines: []appinventory.MovementLineInput{{
				ItemID:   record.ItemID,
				Quantity: diff,
			}},
		}, now)
		if err != nil {
			return err
		}

		adjustment = &entity.Adjustment{
			ID:        uuid.New().String(),
			ItemID:    record.ItemID,
			AuditID:   &record.ID,
			Type:      adjType,
			Quantity:  diff.Abs(),
			Reason:    reason,
			Status:    entity.AdjustmentStatusApplied,
			CreatedBy: responsibleID,
			CreatedAt: now,
		}
		if err := audits.CreateAdjustment(ctx, adjustment); err != nil {
			return err
		}
		return audits.UpdateAuditStatus(ctx, record.ID, entity.AuditStatusAdjusted)
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}
