package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// Receive atajo para la entrada más común: una compra de un solo ítem.
// Equivale a Commit con un documento RECEIPT de una línea; reference es la
// factura o remisión de compra (obligatoria: sin procedencia se rechaza).
func (uc *CommitMovementUseCase) Receive(
	ctx context.Context,
	itemID string,
	quantity, unitPrice decimal.Decimal,
	reference, responsibleID string,
) (string, error) {
	return uc.Commit(ctx, MovementInput{
		Class:         entity.MovementClassReceipt,
		Reference:     reference,
		ResponsibleID: responsibleID,
		Lines: []MovementLineInput{{
			ItemID:    itemID,
			Quantity:  quantity,
			UnitPrice: &unitPrice,
		}},
	})
}
