package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// ItemResponse ítem del catálogo con su caché de cantidad y costo.
type ItemResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	Category            string          `json:"category"`
	AvailableQuantity   decimal.Decimal `json:"available_quantity"`
	WeightedAverageCost decimal.Decimal `json:"weighted_average_cost"`
	ReorderPoint        decimal.Decimal `json:"reorder_point"`
	MaxStock            decimal.Decimal `json:"max_stock"`
	StorageClass        string          `json:"storage_class,omitempty"`

	Owned                  bool            `json:"owned,omitempty"`
	PurchaseValue          decimal.Decimal `json:"purchase_value,omitempty"`
	ResidualValue          decimal.Decimal `json:"residual_value,omitempty"`
	UsefulLifeMonths       int             `json:"useful_life_months,omitempty"`
	BookValue              decimal.Decimal `json:"book_value,omitempty"`
	LastDepreciationPeriod string          `json:"last_depreciation_period,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToItemResponse mapea la entidad a su representación HTTP.
func ToItemResponse(item *entity.InventoryItem) ItemResponse {
	resp := ItemResponse{
		ID:                     item.ID,
		Name:                   item.Name,
		Unit:                   item.Unit,
		Category:               item.Category,
		AvailableQuantity:      item.AvailableQuantity,
		WeightedAverageCost:    item.WeightedAverageCost,
		ReorderPoint:           item.ReorderPoint,
		MaxStock:               item.MaxStock,
		Owned:                  item.Owned,
		PurchaseValue:          item.PurchaseValue,
		ResidualValue:          item.ResidualValue,
		UsefulLifeMonths:       item.UsefulLifeMonths,
		BookValue:              item.BookValue,
		LastDepreciationPeriod: item.LastDepreciationPeriod,
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
	if item.Specs != nil {
		resp.StorageClass = string(item.Specs.Storage())
	}
	return resp
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// DepreciationResultResponse resultado de depreciar un activo en un período.
type DepreciationResultResponse struct {
	ItemID            string          `json:"item_id"`
	Period            string          `json:"period"`
	MonthlyAmount     decimal.Decimal `json:"monthly_amount"`
	PreviousBookValue decimal.Decimal `json:"previous_book_value"`
	NewBookValue      decimal.Decimal `json:"new_book_value"`
}
