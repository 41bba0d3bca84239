package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/application/dto"
	"github.com/construplan/construplan-api/internal/application/ports"
	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// quantityTolerance tolerancia del 5% sobre la cantidad presupuestada antes
// de alertar sobreconsumo.
var quantityTolerance = decimal.RequireFromString("1.05")

// VarianceUseCase analizador de desviación presupuestal. Compara el consumo
// acumulado del kardex contra las partidas del presupuesto. Solo lectura:
// las alertas son advertencias, el caller decide si bloquea el despacho.
type VarianceUseCase struct {
	budgetRepo   repository.BudgetRepository
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
	notifier     ports.Notifier
}

// NewVarianceUseCase construye el analizador.
func NewVarianceUseCase(
	budgetRepo repository.BudgetRepository,
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	notifier ports.Notifier,
) *VarianceUseCase {
	return &VarianceUseCase{
		budgetRepo:   budgetRepo,
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		notifier:     notifier,
	}
}

// Check evalúa una solicitud de despacho contra el presupuesto y devuelve las
// alertas encontradas. Regla 1: proyectado > presupuestado * 1.05 → alerta de
// sobreconsumo. Regla 2: WAC vigente > precio unitario presupuestado → alerta
// de desviación de precio.
func (uc *VarianceUseCase) Check(ctx context.Context, req dto.VarianceCheckRequest) ([]dto.BudgetAlert, error) {
	alerts := make([]dto.BudgetAlert, 0)
	for _, line := range req.Lines {
		if line.BudgetLineID == "" {
			// Línea sin partida imputada: no hay plan contra qué comparar.
			continue
		}
		if line.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		budgetLine, err := uc.budgetRepo.GetByID(ctx, line.BudgetLineID)
		if err != nil {
			return nil, err
		}
		if budgetLine == nil {
			return nil, domain.ErrNotFound
		}

		acc, err := uc.movementRepo.AccumulatedConsumption(ctx, line.BudgetLineID)
		if err != nil {
			return nil, err
		}
		projected := acc.Quantity.Add(line.Quantity)
		limit := budgetLine.BudgetedQuantity.Mul(quantityTolerance)
		if projected.GreaterThan(limit) {
			alerts = append(alerts, dto.BudgetAlert{
				Type:              dto.AlertQuantityOverrun,
				BudgetCode:        budgetLine.Code,
				ItemID:            line.ItemID,
				BudgetedQuantity:  budgetLine.BudgetedQuantity,
				ProjectedQuantity: projected,
				Message: fmt.Sprintf("partida %s: proyectado %s supera presupuestado %s (+5%%)",
					budgetLine.Code, projected, budgetLine.BudgetedQuantity),
			})
		}

		item, err := uc.itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.WeightedAverageCost.GreaterThan(budgetLine.BudgetedUnitPrice) {
			alerts = append(alerts, dto.BudgetAlert{
				Type:         dto.AlertPriceDeviation,
				BudgetCode:   budgetLine.Code,
				ItemID:       line.ItemID,
				CurrentCost:  item.WeightedAverageCost,
				BudgetedCost: budgetLine.BudgetedUnitPrice,
				Message: fmt.Sprintf("ítem %s: costo pagado %s sobre presupuestado %s",
					item.Name, item.WeightedAverageCost, budgetLine.BudgetedUnitPrice),
			})
		}
	}

	if uc.notifier != nil {
		for _, a := range alerts {
			uc.notifier.Notify(ctx, ports.Notification{
				Title:    string(a.Type),
				Body:     a.Message,
				Category: "budget",
			})
		}
	}
	return alerts, nil
}
