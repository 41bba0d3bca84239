package dto

import "github.com/shopspring/decimal"

// Tipos de alerta presupuestal.
type AlertType string

const (
	AlertQuantityOverrun AlertType = "QUANTITY_OVERRUN"
	AlertPriceDeviation  AlertType = "PRICE_DEVIATION"
)

// VarianceCheckLine línea de una solicitud de despacho a evaluar.
type VarianceCheckLine struct {
	ItemID       string          `json:"item_id"`
	BudgetLineID string          `json:"budget_line_id"`
	Quantity     decimal.Decimal `json:"quantity"` // cantidad solicitada (positiva)
}

// VarianceCheckRequest body para POST /api/budget/variance-check.
type VarianceCheckRequest struct {
	RequestID string              `json:"request_id,omitempty"`
	Lines     []VarianceCheckLine `json:"lines"`
}

// BudgetAlert alerta de desviación presupuestal (advertencia, no bloqueo).
type BudgetAlert struct {
	Type              AlertType       `json:"type"`
	BudgetCode        string          `json:"budget_code"`
	ItemID            string          `json:"item_id"`
	BudgetedQuantity  decimal.Decimal `json:"budgeted_quantity,omitempty"`
	ProjectedQuantity decimal.Decimal `json:"projected_quantity,omitempty"`
	CurrentCost       decimal.Decimal `json:"current_cost,omitempty"`
	BudgetedCost      decimal.Decimal `json:"budgeted_cost,omitempty"`
	Message           string          `json:"message"`
}
