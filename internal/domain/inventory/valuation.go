package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual cero el costo nuevo es el precio de la entrada.
func WeightedAverageCost(currentQty, currentCost, receivedQty, unitPrice decimal.Decimal) decimal.Decimal {
	if currentQty.LessThanOrEqual(decimal.Zero) {
		return unitPrice
	}
	sum := currentQty.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(receivedQty.Mul(unitPrice))
	return num.Div(sum)
}
