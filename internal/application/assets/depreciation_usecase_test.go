package assets_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construplan/construplan-api/internal/application/assets"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/infrastructure/memory"
)

const testRevolvedoraID = "item-revolvedora"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newDepreciationFixture revolvedora propia: compra 12000, residual 2000,
// vida útil 60 meses → cuota mensual de 166.67.
func newDepreciationFixture(t *testing.T) (*memory.Store, *assets.DepreciationUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:               testRevolvedoraID,
		Name:             "Revolvedora 1 saco",
		Unit:             "pza",
		Category:         entity.CategoryMachinery,
		Owned:            true,
		PurchaseValue:    dec("12000"),
		ResidualValue:    dec("2000"),
		UsefulLifeMonths: 60,
		BookValue:        dec("12000"),
		Specs:            entity.MachinerySpecs{Model: "RV-1"},
	})
	return store, assets.NewDepreciationUseCase(store.Items())
}

func july() time.Time { return time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC) }

// ──────────────────────────────────────────────────────────────────────────────
// Línea recta
// ──────────────────────────────────────────────────────────────────────────────

// (12000 − 2000) / 60 = 166.67 redondeado a 2 decimales.
func TestRunMonthly_CuotaLineaRecta(t *testing.T) {
	store, uc := newDepreciationFixture(t)

	results, err := uc.RunMonthly(context.Background(), july())
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, testRevolvedoraID, r.ItemID)
	assert.Equal(t, "2026-07", r.Period)
	assert.True(t, dec("166.67").Equal(r.MonthlyAmount), "cuota: esperado 166.67, obtenido %s", r.MonthlyAmount)
	assert.True(t, dec("12000").Equal(r.PreviousBookValue))
	assert.True(t, dec("11833.33").Equal(r.NewBookValue))

	item, _ := store.Items().GetByID(context.Background(), testRevolvedoraID)
	assert.True(t, dec("11833.33").Equal(item.BookValue))
	assert.Equal(t, "2026-07", item.LastDepreciationPeriod)
}

// Segunda corrida del mismo período: no deduce dos veces.
func TestRunMonthly_IdempotentePorPeriodo(t *testing.T) {
	store, uc := newDepreciationFixture(t)
	ctx := context.Background()

	_, err := uc.RunMonthly(ctx, july())
	require.NoError(t, err)

	results, err := uc.RunMonthly(ctx, july())
	require.NoError(t, err)
	assert.Empty(t, results, "el período ya procesado debe omitirse")

	item, _ := store.Items().GetByID(ctx, testRevolvedoraID)
	assert.True(t, dec("11833.33").Equal(item.BookValue), "doble invocación no debe deducir dos veces")
}

// Períodos consecutivos sí acumulan.
func TestRunMonthly_PeriodosConsecutivos(t *testing.T) {
	store, uc := newDepreciationFixture(t)
	ctx := context.Background()

	_, err := uc.RunMonthly(ctx, july())
	require.NoError(t, err)
	_, err = uc.RunMonthly(ctx, july().AddDate(0, 1, 0))
	require.NoError(t, err)

	item, _ := store.Items().GetByID(ctx, testRevolvedoraID)
	assert.True(t, dec("11666.66").Equal(item.BookValue))
	assert.Equal(t, "2026-08", item.LastDepreciationPeriod)
}

// El valor en libros nunca baja de cero.
func TestRunMonthly_LibroNoBajaDeCero(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:               "item-vibrador",
		Name:             "Vibrador de concreto",
		Unit:             "pza",
		Category:         entity.CategoryMachinery,
		Owned:            true,
		PurchaseValue:    dec("1200"),
		ResidualValue:    dec("0"),
		UsefulLifeMonths: 12,
		BookValue:        dec("50"), // casi agotado: la cuota de 100 excede el saldo
	})
	uc := assets.NewDepreciationUseCase(store.Items())

	results, err := uc.RunMonthly(context.Background(), july())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].NewBookValue.IsZero(), "el libro se trunca en cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Elegibilidad
// ──────────────────────────────────────────────────────────────────────────────

// Maquinaria rentada y materiales no entran al ciclo de depreciación.
func TestRunMonthly_SoloMaquinariaPropia(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:               "item-retro-rentada",
		Name:             "Retroexcavadora rentada",
		Unit:             "pza",
		Category:         entity.CategoryMachinery,
		Owned:            false, // rentada
		PurchaseValue:    dec("500000"),
		UsefulLifeMonths: 120,
		BookValue:        dec("500000"),
	})
	store.SeedItem(entity.InventoryItem{
		ID:                "item-cemento",
		Name:              "Cemento gris 50kg",
		Unit:              "saco",
		Category:          entity.CategoryMaterial,
		AvailableQuantity: dec("100"),
	})
	uc := assets.NewDepreciationUseCase(store.Items())

	results, err := uc.RunMonthly(context.Background(), july())
	require.NoError(t, err)
	assert.Empty(t, results, "solo maquinaria propia con vida útil definida se deprecia")
}
