package entity

import "github.com/shopspring/decimal"

// BudgetLineItem partida presupuestal de un proyecto: cantidad y precio unitario
// planeados para una categoría de material. Inmutable salvo revisión explícita
// del presupuesto (fuera del alcance de este núcleo).
type BudgetLineItem struct {
	ID                string
	ProjectID         string
	Code              string // código de la partida (ej. "CON-05-ACERO")
	Description       string
	BudgetedQuantity  decimal.Decimal
	BudgetedUnitPrice decimal.Decimal
	Unit              string
}
