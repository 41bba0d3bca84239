package audit_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/construplan/construplan-api/internal/application/audit"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/infrastructure/memory"
)

const (
	testCementoID = "item-cemento"
	testContador  = "user-almacenista"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAuditFixture(t *testing.T, available string) (*memory.Store, *appaudit.UseCase) {
	t.Helper()
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:                  testCementoID,
		Name:                "Cemento gris 50kg",
		Unit:                "saco",
		Category:            entity.CategoryMaterial,
		AvailableQuantity:   dec(available),
		WeightedAverageCost: dec("10.00"),
	})
	return store, appaudit.NewUseCase(store, store.Items(), store.Audits())
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteo físico
// ──────────────────────────────────────────────────────────────────────────────

// Conteo igual a libros: RECONCILED, sin efectos colaterales.
func TestSubmitCount_ConteoCoincideQuedaReconciliado(t *testing.T) {
	store, uc := newAuditFixture(t, "100")

	record, err := uc.SubmitCount(context.Background(), testCementoID, dec("100"), testContador)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusReconciled, record.Status)
	assert.True(t, dec("100").Equal(record.SystemQtySnapshot))

	item, _ := store.Items().GetByID(context.Background(), testCementoID)
	assert.True(t, dec("100").Equal(item.AvailableQuantity), "un conteo que coincide no muta nada")
}

// Conteo distinto a libros: CONFLICT con el snapshot capturado al momento.
func TestSubmitCount_ConteoDifiereQuedaEnConflicto(t *testing.T) {
	_, uc := newAuditFixture(t, "100")

	record, err := uc.SubmitCount(context.Background(), testCementoID, dec("94"), testContador)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusConflict, record.Status)
	assert.True(t, dec("94").Equal(record.CountedQuantity))
	assert.True(t, dec("100").Equal(record.SystemQtySnapshot))
}

func TestSubmitCount_ConteoNegativoRechazado(t *testing.T) {
	_, uc := newAuditFixture(t, "100")
	_, err := uc.SubmitCount(context.Background(), testCementoID, dec("-1"), testContador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitCount_ItemInexistente(t *testing.T) {
	_, uc := newAuditFixture(t, "100")
	_, err := uc.SubmitCount(context.Background(), "item-fantasma", dec("10"), testContador)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste correctivo
// ──────────────────────────────────────────────────────────────────────────────

// Merma: contados 94 contra 100 en libros → SHRINKAGE de 6 y disponible en 94.
func TestApplyAdjustment_MermaAjustaDisponible(t *testing.T) {
	store, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, err := uc.SubmitCount(ctx, testCementoID, dec("94"), testContador)
	require.NoError(t, err)

	adj, err := uc.ApplyAdjustment(ctx, record.ID, "merma por rotura de sacos", testContador)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentShrinkage, adj.Type)
	assert.True(t, dec("6").Equal(adj.Quantity), "la magnitud del ajuste debe ser 6")
	assert.True(t, dec("-6").Equal(adj.SignedDelta()))

	item, _ := store.Items().GetByID(ctx, testCementoID)
	assert.True(t, dec("94").Equal(item.AvailableQuantity))

	stored, _ := store.Audits().GetAudit(ctx, record.ID)
	assert.Equal(t, entity.AuditStatusAdjusted, stored.Status)
}

// Sobrante: contados 105 contra 100 → SURPLUS de 5.
func TestApplyAdjustment_SobranteAjustaDisponible(t *testing.T) {
	store, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, err := uc.SubmitCount(ctx, testCementoID, dec("105"), testContador)
	require.NoError(t, err)

	adj, err := uc.ApplyAdjustment(ctx, record.ID, "sobrante en conteo anual", testContador)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentSurplus, adj.Type)
	assert.True(t, dec("5").Equal(adj.Quantity))

	item, _ := store.Items().GetByID(ctx, testCementoID)
	assert.True(t, dec("105").Equal(item.AvailableQuantity))
}

// El ajuste aterriza en el kardex como documento OTHER referenciando el folio
// de la auditoría: conserva el invariante suma(kardex) == disponible.
func TestApplyAdjustment_QuedaEnElKardex(t *testing.T) {
	store, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, _ := uc.SubmitCount(ctx, testCementoID, dec("94"), testContador)
	_, err := uc.ApplyAdjustment(ctx, record.ID, "merma", testContador)
	require.NoError(t, err)

	docs, err := store.Movements().ListByItem(ctx, testCementoID, nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, entity.MovementClassOther, docs[0].Class)
	assert.Equal(t, record.ID, docs[0].Reference, "la referencia del documento es el folio de auditoría")

	sum, _ := store.Movements().SumQuantityByItem(ctx, testCementoID)
	item, _ := store.Items().GetByID(ctx, testCementoID)
	assert.True(t, dec("100").Add(sum).Equal(item.AvailableQuantity),
		"el ajuste debe conservar el invariante del kardex")
}

// Razón vacía: rechazo antes de abrir transacción.
func TestApplyAdjustment_RazonObligatoria(t *testing.T) {
	_, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, _ := uc.SubmitCount(ctx, testCementoID, dec("94"), testContador)
	_, err := uc.ApplyAdjustment(ctx, record.ID, "   ", testContador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una auditoría RECONCILED no admite ajuste.
func TestApplyAdjustment_SoloAuditoriasEnConflicto(t *testing.T) {
	_, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, _ := uc.SubmitCount(ctx, testCementoID, dec("100"), testContador)
	_, err := uc.ApplyAdjustment(ctx, record.ID, "no aplica", testContador)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Doble ajuste de la misma auditoría: el segundo falla porque el estado ya
// transicionó a ADJUSTED. El disponible solo cambia una vez.
func TestApplyAdjustment_NoEsReaplicable(t *testing.T) {
	store, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, _ := uc.SubmitCount(ctx, testCementoID, dec("94"), testContador)
	_, err := uc.ApplyAdjustment(ctx, record.ID, "merma", testContador)
	require.NoError(t, err)

	_, err = uc.ApplyAdjustment(ctx, record.ID, "merma otra vez", testContador)
	assert.ErrorIs(t, err, domain.ErrConflict)

	item, _ := store.Items().GetByID(ctx, testCementoID)
	assert.True(t, dec("94").Equal(item.AvailableQuantity), "el ajuste solo puede aplicarse una vez")
}

// Si otro movimiento aterrizó entre el conteo y el ajuste, el ajuste se
// rechaza: anclarse al snapshot pisaría el movimiento legítimo intermedio.
func TestApplyAdjustment_RechazadoSiElLibroCambio(t *testing.T) {
	store, uc := newAuditFixture(t, "100")
	ctx := context.Background()

	record, err := uc.SubmitCount(ctx, testCementoID, dec("94"), testContador)
	require.NoError(t, err)

	// Un consumo legítimo aterriza después del conteo.
	commitUC := appinventory.NewCommitMovementUseCase(store)
	_, err = commitUC.Commit(ctx, appinventory.MovementInput{
		Class:         entity.MovementClassConsumption,
		ResponsibleID: testContador,
		Lines: []appinventory.MovementLineInput{{
			ItemID:   testCementoID,
			Quantity: dec("-10"),
		}},
	})
	require.NoError(t, err)

	_, err = uc.ApplyAdjustment(ctx, record.ID, "merma", testContador)

	var driftErr *domain.AuditDriftError
	require.ErrorAs(t, err, &driftErr, "libro movido tras el conteo debe rechazar el ajuste")
	assert.True(t, dec("100").Equal(driftErr.Snapshot))
	assert.True(t, dec("90").Equal(driftErr.Current))

	item, _ := store.Items().GetByID(ctx, testCementoID)
	assert.True(t, dec("90").Equal(item.AvailableQuantity), "el rechazo no debe mutar nada")

	stored, _ := store.Audits().GetAudit(ctx, record.ID)
	assert.Equal(t, entity.AuditStatusConflict, stored.Status, "la auditoría sigue pendiente: el conteo debe repetirse")
}
