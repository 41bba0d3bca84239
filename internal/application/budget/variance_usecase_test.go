package budget_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construplan/construplan-api/internal/application/budget"
	"github.com/construplan/construplan-api/internal/application/dto"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/application/ports"
	"github.com/construplan/construplan-api/internal/domain"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/infrastructure/memory"
)

const (
	testAceroID    = "item-acero"
	testPartidaID  = "partida-acero"
	testResponsib  = "user-residente"
	testPartidaCod = "CON-05-ACERO"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// capturingNotifier registra las notificaciones emitidas.
type capturingNotifier struct {
	sent []ports.Notification
}

func (n *capturingNotifier) Notify(ctx context.Context, notification ports.Notification) {
	n.sent = append(n.sent, notification)
}

// newVarianceFixture partida de 100 unidades a $5.00 con `consumed` ya
// imputado al kardex y un WAC vigente de `wac`.
func newVarianceFixture(t *testing.T, consumed, wac string) (*memory.Store, *budget.VarianceUseCase, *capturingNotifier) {
	t.Helper()
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:                  testAceroID,
		Name:                "Acero #4",
		Unit:                "kg",
		Category:            entity.CategoryMaterial,
		AvailableQuantity:   dec("1000"),
		WeightedAverageCost: dec(wac),
	})
	store.SeedBudgetLine(entity.BudgetLineItem{
		ID:                testPartidaID,
		ProjectID:         "proyecto-1",
		Code:              testPartidaCod,
		Description:       "Acero de refuerzo",
		BudgetedQuantity:  dec("100"),
		BudgetedUnitPrice: dec("5.00"),
		Unit:              "kg",
	})

	if consumedQty := dec(consumed); consumedQty.IsPositive() {
		commitUC := appinventory.NewCommitMovementUseCase(store)
		partidaID := testPartidaID
		_, err := commitUC.Commit(context.Background(), appinventory.MovementInput{
			Class:         entity.MovementClassConsumption,
			ResponsibleID: testResponsib,
			Lines: []appinventory.MovementLineInput{{
				ItemID:       testAceroID,
				Quantity:     consumedQty.Neg(),
				BudgetLineID: &partidaID,
			}},
		})
		require.NoError(t, err)
	}

	notifier := &capturingNotifier{}
	uc := budget.NewVarianceUseCase(store.Budgets(), store.Movements(), store.Items(), notifier)
	return store, uc, notifier
}

func checkRequest(qty string) dto.VarianceCheckRequest {
	return dto.VarianceCheckRequest{
		Lines: []dto.VarianceCheckLine{{
			ItemID:       testAceroID,
			BudgetLineID: testPartidaID,
			Quantity:     dec(qty),
		}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 1: sobreconsumo de cantidad (tolerancia 5%)
// ──────────────────────────────────────────────────────────────────────────────

// Consumidos 96 de 100 presupuestados; pedir 10 proyecta 106 > 105 → alerta.
func TestCheck_ProyectadoSobreToleranciaAlerta(t *testing.T) {
	_, uc, notifier := newVarianceFixture(t, "96", "5.00")

	alerts, err := uc.Check(context.Background(), checkRequest("10"))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, dto.AlertQuantityOverrun, alerts[0].Type)
	assert.Equal(t, testPartidaCod, alerts[0].BudgetCode)
	assert.True(t, dec("106").Equal(alerts[0].ProjectedQuantity))
	assert.True(t, dec("100").Equal(alerts[0].BudgetedQuantity))
	assert.Len(t, notifier.sent, 1, "cada alerta genera una notificación")
}

// Proyectado exactamente en el límite (105 = 100 * 1.05): sin alerta.
func TestCheck_ProyectadoEnElLimiteNoAlerta(t *testing.T) {
	_, uc, _ := newVarianceFixture(t, "96", "5.00")

	alerts, err := uc.Check(context.Background(), checkRequest("9"))
	require.NoError(t, err)
	assert.Empty(t, alerts, "105 está dentro de la tolerancia del 5%")
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 2: desviación de precio
// ──────────────────────────────────────────────────────────────────────────────

// WAC vigente 6.00 sobre presupuestado 5.00 → alerta de precio.
func TestCheck_WACSobrePresupuestadoAlerta(t *testing.T) {
	_, uc, _ := newVarianceFixture(t, "0", "6.00")

	alerts, err := uc.Check(context.Background(), checkRequest("10"))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, dto.AlertPriceDeviation, alerts[0].Type)
	assert.True(t, dec("6.00").Equal(alerts[0].CurrentCost))
	assert.True(t, dec("5.00").Equal(alerts[0].BudgetedCost))
}

// Ambas reglas pueden disparar sobre la misma línea.
func TestCheck_AmbasAlertasSimultaneas(t *testing.T) {
	_, uc, notifier := newVarianceFixture(t, "96", "6.00")

	alerts, err := uc.Check(context.Background(), checkRequest("10"))
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, dto.AlertQuantityOverrun, alerts[0].Type)
	assert.Equal(t, dto.AlertPriceDeviation, alerts[1].Type)
	assert.Len(t, notifier.sent, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bordes
// ──────────────────────────────────────────────────────────────────────────────

// Sin desviaciones: lista vacía, cero notificaciones.
func TestCheck_SinDesviacionesSinAlertas(t *testing.T) {
	_, uc, notifier := newVarianceFixture(t, "50", "4.50")

	alerts, err := uc.Check(context.Background(), checkRequest("10"))
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Empty(t, notifier.sent)
}

// Línea sin partida imputada: no hay plan contra qué comparar, se omite.
func TestCheck_LineaSinPartidaSeOmite(t *testing.T) {
	_, uc, _ := newVarianceFixture(t, "96", "6.00")

	alerts, err := uc.Check(context.Background(), dto.VarianceCheckRequest{
		Lines: []dto.VarianceCheckLine{{
			ItemID:   testAceroID,
			Quantity: dec("10"),
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheck_PartidaInexistente(t *testing.T) {
	_, uc, _ := newVarianceFixture(t, "0", "5.00")

	_, err := uc.Check(context.Background(), dto.VarianceCheckRequest{
		Lines: []dto.VarianceCheckLine{{
			ItemID:       testAceroID,
			BudgetLineID: "partida-fantasma",
			Quantity:     dec("10"),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheck_CantidadNegativaRechazada(t *testing.T) {
	_, uc, _ := newVarianceFixture(t, "0", "5.00")

	_, err := uc.Check(context.Background(), checkRequest("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
