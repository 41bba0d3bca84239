package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	domaininv "github.com/construplan/construplan-api/internal/domain/inventory"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// CommitMovementUseCase procesa documentos de movimiento (entrada, salida,
// traslado, otro) de forma transaccional: relee y bloquea cada ítem dentro de
// la tx (SELECT FOR UPDATE), valida contra esa lectura fresca y escribe el
// documento, sus líneas y la caché de cantidad/costo juntos.
type CommitMovementUseCase struct {
	txRunner TxRunner
}

// NewCommitMovementUseCase construye el caso de uso.
func NewCommitMovementUseCase(txRunner TxRunner) *CommitMovementUseCase {
	return &CommitMovementUseCase{txRunner: txRunner}
}

// MovementLineInput línea de entrada para un documento. Quantity es firmada
// según la convención de la clase: RECEIPT +, CONSUMPTION −, TRANSFER ±, OTHER ±.
type MovementLineInput struct {
	ItemID       string
	Quantity     decimal.Decimal
	UnitPrice    *decimal.Decimal // obligatorio y >= 0 en líneas de entrada
	BudgetLineID *string          // partida presupuestal imputada (consumos)
	LocationID   string           // ubicación de la línea (traslados)
}

// MovementInput entrada para confirmar un documento de movimiento.
type MovementInput struct {
	Class         string
	Reference     string // factura de compra, vale de salida o folio de auditoría
	ResponsibleID string
	Remark        string
	Lines         []MovementLineInput
}

// Commit valida y confirma el documento como una sola unidad atómica.
// Devuelve el ID del documento creado. Ante cualquier rechazo el kardex y la
// caché de ítems quedan intactos.
func (uc *CommitMovementUseCase) Commit(ctx context.Context, input MovementInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	var docID string
	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error {
		doc, err := CommitDocumentInTx(ctx, items, movements, input, time.Now())
		if err != nil {
			return err
		}
		docID = doc.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return docID, nil
}

// validateInput validaciones corregibles por el caller, antes de abrir transacción.
func validateInput(input MovementInput) error {
	if !entity.ValidMovementClass(input.Class) {
		return domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	if input.Class == entity.MovementClassReceipt && input.Reference == "" {
		// Regla de negocio dura: toda entrada requiere procedencia documentada.
		return &domain.MissingProvenanceError{ItemID: input.Lines[0].ItemID}
	}
	transferSums := make(map[string]decimal.Decimal)
	for _, line := range input.Lines {
		if line.ItemID == "" {
			return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "ítem vacío"}
		}
		if line.Quantity.IsZero() {
			return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "cantidad cero"}
		}
		switch input.Class {
		case entity.MovementClassReceipt:
			if line.Quantity.IsNegative() {
				return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "las entradas llevan cantidad positiva"}
			}
			if line.UnitPrice == nil || line.UnitPrice.IsNegative() {
				return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "costo unitario faltante o negativo"}
			}
		case entity.MovementClassConsumption:
			if line.Quantity.IsPositive() {
				return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "los consumos llevan cantidad negativa"}
			}
		case entity.MovementClassTransfer:
			if line.LocationID == "" {
				return &domain.InvalidLineError{ItemID: line.ItemID, Reason: "los traslados requieren ubicación"}
			}
			transferSums[line.ItemID] = transferSums[line.ItemID].Add(line.Quantity)
		}
	}
	// Un traslado se modela con líneas pareadas que se cancelan por ítem.
	for itemID, sum := range transferSums {
		if !sum.IsZero() {
			return &domain.InvalidLineError{ItemID: itemID, Reason: "las líneas de traslado no se cancelan"}
		}
	}
	return nil
}

// CommitDocumentInTx ejecuta el commit usando los repositorios de la
// transacción del caller. Lo usa Commit y también el motor de conciliación de
// auditoría, de modo que un ajuste es indistinguible de cualquier otro
// movimiento en el kardex.
//
// Orden interno: bloquear ítems en orden determinista, validar cada línea
// contra el estado releído (incluyendo los deltas pendientes del propio
// documento), y solo entonces escribir. Ninguna mutación ocurre antes de que
// todas las líneas pasen.
func CommitDocumentInTx(
	ctx context.Context,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.MovementDocument, error) {
	// Bloquear en orden lexicográfico de ID para evitar deadlocks entre commits concurrentes.
	ids := make([]string, 0, len(input.Lines))
	seen := make(map[string]bool, len(input.Lines))
	for _, line := range input.Lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			ids = append(ids, line.ItemID)
		}
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.InventoryItem, len(ids))
	qty := make(map[string]decimal.Decimal, len(ids))
	wac := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		locked[id] = item
		qty[id] = item.AvailableQuantity
		wac[id] = item.WeightedAverageCost
	}

	docID := uuid.New().String()
	lines := make([]entity.MovementLine, 0, len(input.Lines))
	for _, in := range input.Lines {
		item := locked[in.ItemID]
		running := qty[in.ItemID].Add(in.Quantity)
		if running.IsNegative() {
			return nil, &domain.InsufficientStockError{
				ItemID:    in.ItemID,
				Requested: in.Quantity.Abs(),
				Available: qty[in.ItemID],
			}
		}

		var amount decimal.Decimal
		if input.Class == entity.MovementClassReceipt {
			// Valoración: el costo promedio ponderado se recalcula en la entrada.
			unitPrice := *in.UnitPrice
			wac[in.ItemID] = domaininv.WeightedAverageCost(qty[in.ItemID], wac[in.ItemID], in.Quantity, unitPrice)
			amount = in.Quantity.Mul(unitPrice)
		} else {
			// Salidas, traslados y ajustes se valoran al costo promedio vigente.
			amount = in.Quantity.Mul(wac[in.ItemID])
		}

		// Seguridad de almacenamiento: un traslado entrante no puede colocar
		// clases incompatibles en la misma ubicación. Rechazo duro.
		if input.Class == entity.MovementClassTransfer && in.Quantity.IsPositive() {
			class := entity.StorageInert
			if item.Specs != nil {
				class = item.Specs.Storage()
			}
			present, err := items.StorageClassesAt(ctx, in.LocationID)
			if err != nil {
				return nil, err
			}
			if conflicting := domaininv.FirstIncompatible(class, present); conflicting != "" {
				return nil, &domain.IncompatibleStorageError{
					ItemID:      in.ItemID,
					LocationID:  in.LocationID,
					Class:       class,
					Conflicting: conflicting,
				}
			}
		}

		qty[in.ItemID] = running
		lines = append(lines, entity.MovementLine{
			ID:           uuid.New().String(),
			DocumentID:   docID,
			ItemID:       in.ItemID,
			Quantity:     in.Quantity,
			Amount:       amount,
			BudgetLineID: in.BudgetLineID,
			LocationID:   in.LocationID,
		})
	}

	// Todas las líneas pasaron: escribir caché de ítems y documento juntos.
	for _, id := range ids {
		if err := items.UpdateStock(ctx, id, qty[id], wac[id]); err != nil {
			return nil, err
		}
	}
	doc := &entity.MovementDocument{
		ID:            docID,
		Class:         input.Class,
		Reference:     input.Reference,
		ResponsibleID: input.ResponsibleID,
		Remark:        input.Remark,
		Date:          now,
		CreatedAt:     now,
		Lines:         lines,
	}
	if err := movements.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
