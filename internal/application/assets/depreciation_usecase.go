package assets

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// DepreciationUseCase depreciación mensual en línea recta para maquinaria
// propia. Se invoca bajo demanda (el cron es un colaborador externo).
type DepreciationUseCase struct {
	itemRepo repository.ItemRepository
}

// NewDepreciationUseCase construye el motor de depreciación.
func NewDepreciationUseCase(itemRepo repository.ItemRepository) *DepreciationUseCase {
	return &DepreciationUseCase{itemRepo: itemRepo}
}

// RunMonthly deprecia los activos propios con vida útil definida para el
// período de asOf (YYYY-MM). MontoMensual = (ValorCompra − ValorResidual) / VidaÚtilMeses,
// redondeado a 2 decimales; el valor en libros nunca baja de cero.
//
// Idempotencia: cada activo guarda el último período procesado y se omite si
// ya se corrió este mes, así una doble invocación no deduce dos veces.
func (uc *DepreciationUseCase) RunMonthly(ctx context.Context, asOf time.Time) ([]entity.DepreciationResult, error) {
	period := asOf.Format("2006-01")
	assets, err := uc.itemRepo.ListDepreciable(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]entity.DepreciationResult, 0, len(assets))
	for _, asset := range assets {
		if !asset.Depreciable() || asset.LastDepreciationPeriod == period {
			continue
		}
		monthly := asset.PurchaseValue.Sub(asset.ResidualValue).
			Div(decimal.NewFromInt(int64(asset.UsefulLifeMonths))).
			Round(2)
		newBook := asset.BookValue.Sub(monthly)
		if newBook.IsNegative() {
			newBook = decimal.Zero
		}
		if err := uc.itemRepo.UpdateDepreciation(ctx, asset.ID, newBook, period); err != nil {
			return nil, err
		}
		results = append(results, entity.DepreciationResult{
			ItemID:            asset.ID,
			Period:            period,
			MonthlyAmount:     monthly,
			PreviousBookValue: asset.BookValue,
			NewBookValue:      newBook,
		})
	}
	return results, nil
}
