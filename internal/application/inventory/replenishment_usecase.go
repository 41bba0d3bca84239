package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/application/dto"
	"github.com/construplan/construplan-api/internal/application/ports"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// ReplenishmentUseCase genera sugerencias de compra para los ítems en o bajo
// su punto de reorden. Lectura pura: no muta nada; el envío de la sugerencia
// al área de compras es un colaborador externo.
type ReplenishmentUseCase struct {
	itemRepo repository.ItemRepository
	notifier ports.Notifier
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(itemRepo repository.ItemRepository, notifier ports.Notifier) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo, notifier: notifier}
}

// Scan devuelve una sugerencia por ítem con disponible <= punto de reorden.
// CantidadSugerida = max(StockMáximo, PuntoReorden*2) − Disponible.
// Ordena por mayor déficit primero y asigna prioridad 1 = más urgente.
func (uc *ReplenishmentUseCase) Scan(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	items, err := uc.itemRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	two := decimal.NewFromInt(2)

	suggestions := make([]dto.ReplenishmentSuggestion, 0, len(items))
	for _, item := range items {
		target := item.MaxStock
		if doubled := item.ReorderPoint.Mul(two); doubled.GreaterThan(target) {
			target = doubled
		}
		suggested := target.Sub(item.AvailableQuantity)
		if suggested.LessThanOrEqual(decimal.Zero) {
			continue
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestion{
			ItemID:            item.ID,
			ItemName:          item.Name,
			Unit:              item.Unit,
			AvailableQuantity: item.AvailableQuantity,
			ReorderPoint:      item.ReorderPoint,
			SuggestedQuantity: suggested,
			EstimatedCost:     suggested.Mul(item.WeightedAverageCost).Round(2),
		})
	}

	// Mayor déficit bajo el punto de reorden primero.
	sort.SliceStable(suggestions, func(i, j int) bool {
		defI := suggestions[i].ReorderPoint.Sub(suggestions[i].AvailableQuantity)
		defJ := suggestions[j].ReorderPoint.Sub(suggestions[j].AvailableQuantity)
		return defI.GreaterThan(defJ)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	if uc.notifier != nil {
		for _, s := range suggestions {
			uc.notifier.Notify(ctx, ports.Notification{
				Title:    fmt.Sprintf("Reposición sugerida: %s", s.ItemName),
				Body:     fmt.Sprintf("Disponible %s %s, pedir %s", s.AvailableQuantity, s.Unit, s.SuggestedQuantity),
				Category: "replenishment",
			})
		}
	}
	return suggestions, nil
}
