package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitCountRequest body para POST /api/audits (conteo físico).
type SubmitCountRequest struct {
	ItemID          string          `json:"item_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// ApplyAdjustmentRequest body para POST /api/audits/:id/adjustment.
type ApplyAdjustmentRequest struct {
	Reason string `json:"reason"`
}

// AuditRecordResponse registro de auditoría.
type AuditRecordResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	CountedQuantity   decimal.Decimal `json:"counted_quantity"`
	SystemQtySnapshot decimal.Decimal `json:"system_qty_snapshot"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// AdjustmentResponse ajuste aplicado.
type AdjustmentResponse struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	AuditID  *string         `json:"audit_id,omitempty"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
	Status   string          `json:"status"`
}
