package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de ítems del almacén de obra.
const (
	CategoryMaterial  = "MATERIAL"    // materiales de construcción (cemento, acero, agregados)
	CategoryMachinery = "MACHINERY"   // maquinaria y equipo propio o rentado
	CategoryFuel      = "FUEL"        // combustibles y lubricantes
	CategoryTool      = "TOOL"        // herramienta menor
)

// InventoryItem representa un ítem almacenable del catálogo de obra.
// AvailableQuantity y WeightedAverageCost solo los mutan el procesador de
// movimientos y el motor de conciliación de auditoría; ambos deben quedar >= 0
// después de cada commit.
type InventoryItem struct {
	ID                  string
	Name                string
	Unit                string // unidad de medida (kg, m3, lt, pza)
	Category            string
	AvailableQuantity   decimal.Decimal
	WeightedAverageCost decimal.Decimal
	ReorderPoint        decimal.Decimal
	MaxStock            decimal.Decimal
	Specs               ItemSpecs // ficha técnica por categoría (unión etiquetada)

	// Campos de activo depreciable (solo maquinaria propia).
	Owned                  bool
	PurchaseValue          decimal.Decimal
	ResidualValue          decimal.Decimal
	UsefulLifeMonths       int
	BookValue              decimal.Decimal
	LastDepreciationPeriod string // "YYYY-MM" del último período procesado; vacío = nunca

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Depreciable indica si el ítem entra al ciclo mensual de depreciación:
// maquinaria propia (no rentada) con vida útil definida.
func (i *InventoryItem) Depreciable() bool {
	return i.Category == CategoryMachinery && i.Owned && i.UsefulLifeMonths > 0
}

// DepreciationResult resultado de depreciar un activo en un período.
type DepreciationResult struct {
	ItemID            string
	Period            string // "YYYY-MM"
	MonthlyAmount     decimal.Decimal
	PreviousBookValue decimal.Decimal
	NewBookValue      decimal.Decimal
}
