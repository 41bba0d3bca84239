package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest línea de un documento de movimiento. Quantity firmada:
// RECEIPT +, CONSUMPTION −, TRANSFER ±, OTHER ±.
type MovementLineRequest struct {
	ItemID       string           `json:"item_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	BudgetLineID *string          `json:"budget_line_id,omitempty"`
	LocationID   string           `json:"location_id,omitempty"`
}

// CommitMovementRequest body para POST /api/movements.
type CommitMovementRequest struct {
	Class     string                `json:"class"`
	Reference string                `json:"reference,omitempty"`
	Remark    string                `json:"remark,omitempty"`
	Lines     []MovementLineRequest `json:"lines"`
}

// ReceiveRequest body para POST /api/movements/receipts (entrada de una línea).
type ReceiveRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reference string          `json:"reference"`
}

// MovementLineResponse línea de un documento en respuestas de kardex.
type MovementLineResponse struct {
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	BudgetLineID *string         `json:"budget_line_id,omitempty"`
	LocationID   string          `json:"location_id,omitempty"`
}

// MovementDocumentResponse documento de movimiento con sus líneas.
type MovementDocumentResponse struct {
	ID            string                 `json:"id"`
	Class         string                 `json:"class"`
	Code          string                 `json:"code"`
	Reference     string                 `json:"reference,omitempty"`
	ResponsibleID string                 `json:"responsible_id,omitempty"`
	Remark        string                 `json:"remark,omitempty"`
	Date          time.Time              `json:"date"`
	Lines         []MovementLineResponse `json:"lines"`
}
