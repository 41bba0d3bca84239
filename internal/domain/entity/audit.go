package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de auditoría (conteo físico).
const (
	AuditStatusReconciled = "RECONCILED" // conteo coincide con el sistema
	AuditStatusConflict   = "CONFLICT"   // diferencia pendiente de ajuste
	AuditStatusAdjusted   = "ADJUSTED"   // ajuste aplicado
)

// AuditRecord conteo físico contra la cantidad en libros.
// SystemQtySnapshot se captura al momento del conteo y no se relee después.
type AuditRecord struct {
	ID                string
	ItemID            string
	CountedQuantity   decimal.Decimal
	SystemQtySnapshot decimal.Decimal
	Status            string
	CountedBy         string
	CreatedAt         time.Time
}

// Tipos de ajuste derivados de una auditoría en conflicto.
const (
	AdjustmentShrinkage = "SHRINKAGE" // faltante: delta negativo
	AdjustmentSurplus   = "SURPLUS"   // sobrante: delta positivo
)

// Estados de un ajuste.
const (
	AdjustmentStatusApplied = "APPLIED"
)

// Adjustment corrección de inventario derivada de una auditoría.
// Quantity siempre es magnitud positiva; el signo lo da el tipo.
type Adjustment struct {
	ID        string
	ItemID    string
	AuditID   *string
	Type      string
	Quantity  decimal.Decimal
	Reason    string // obligatorio
	Status    string
	CreatedBy string
	CreatedAt time.Time
}

// SignedDelta delta firmado que el ajuste aplica a AvailableQuantity.
func (a *Adjustment) SignedDelta() decimal.Decimal {
	if a.Type == AdjustmentShrinkage {
		return a.Quantity.Neg()
	}
	return a.Quantity
}
