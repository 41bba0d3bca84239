package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// ConsumptionAccumulated consumo acumulado imputado a una partida presupuestal.
type ConsumptionAccumulated struct {
	Quantity decimal.Decimal // suma de |cantidad| de líneas CONSUMPTION
	Cost     decimal.Decimal // suma de |monto| de esas líneas
}

// MovementRepository puerto de persistencia del kardex (documentos + líneas).
// Solo inserción y lectura: los documentos son inmutables, las correcciones
// son documentos nuevos que compensan.
type MovementRepository interface {
	// CreateDocument inserta el documento y todas sus líneas.
	CreateDocument(ctx context.Context, doc *entity.MovementDocument) error
	GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error)

	// ListByItem kardex de un ítem en un rango de fechas.
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.MovementDocument, error)

	// SumQuantityByItem suma de cantidades firmadas de todas las líneas del ítem
	// (verificación del invariante de conservación).
	SumQuantityByItem(ctx context.Context, itemID string) (decimal.Decimal, error)

	// AccumulatedConsumption consumo acumulado (cantidad y costo) imputado a la partida.
	AccumulatedConsumption(ctx context.Context, budgetLineID string) (ConsumptionAccumulated, error)
}
