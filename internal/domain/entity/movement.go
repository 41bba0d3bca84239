package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de documento de movimiento. Los códigos espejan los tipos de
// movimiento estándar de almacén (101 entrada, 201 salida a obra,
// 311 traslado, 501 otro/ajuste).
const (
	MovementClassReceipt     = "RECEIPT"     // 101: entrada por compra o traslado positivo
	MovementClassConsumption = "CONSUMPTION" // 201: vale de salida a frente de obra
	MovementClassTransfer    = "TRANSFER"    // 311: traslado entre ubicaciones (líneas pareadas)
	MovementClassOther       = "OTHER"       // 501: corrección manual / ajuste de auditoría
)

// MovementCode devuelve el código numérico de referencia de la clase, o "" si no existe.
func MovementCode(class string) string {
	switch class {
	case MovementClassReceipt:
		return "101"
	case MovementClassConsumption:
		return "201"
	case MovementClassTransfer:
		return "311"
	case MovementClassOther:
		return "501"
	}
	return ""
}

// ValidMovementClass reporta si class es una clase de documento conocida.
func ValidMovementClass(class string) bool {
	return MovementCode(class) != ""
}

// MovementDocument documento de movimiento: inmutable una vez confirmado.
// Las correcciones son documentos nuevos que compensan, nunca updates.
// La suma de cantidades firmadas de todas las líneas de un ítem, en cualquier
// instante, es igual a su AvailableQuantity (kardex).
type MovementDocument struct {
	ID            string
	Class         string
	Reference     string // factura de compra, vale de salida o folio de auditoría
	ResponsibleID string // referencia opaca al responsable (proveedor de identidad)
	Remark        string
	Date          time.Time
	CreatedAt     time.Time
	Lines         []MovementLine
}

// MovementLine línea de movimiento con cantidad firmada según la clase:
// RECEIPT +, CONSUMPTION −, TRANSFER ±, OTHER ±.
type MovementLine struct {
	ID           string
	DocumentID   string
	ItemID       string
	Quantity     decimal.Decimal // firmada
	Amount       decimal.Decimal // monto monetario de la línea (cantidad * costo unitario)
	BudgetLineID *string         // partida presupuestal a la que se imputa el consumo
	LocationID   string          // ubicación destino/origen (traslados)
}
