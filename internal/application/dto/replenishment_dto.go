package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestion sugerencia de compra para un ítem en o bajo su
// punto de reorden. CantidadSugerida = max(StockMáximo, PuntoReorden*2) − Disponible.
type ReplenishmentSuggestion struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Unit              string          `json:"unit"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
