package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/application/ports"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/infrastructure/memory"
)

// capturingNotifier registra las notificaciones emitidas.
type capturingNotifier struct {
	sent []ports.Notification
}

func (n *capturingNotifier) Notify(ctx context.Context, notification ports.Notification) {
	n.sent = append(n.sent, notification)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencias de reposición
// ──────────────────────────────────────────────────────────────────────────────

// CantidadSugerida = max(StockMáximo, PuntoReorden*2) − Disponible.
func TestScan_FormulaDeSugerencia(t *testing.T) {
	store := memory.NewStore()
	// Disponible 8 <= reorden 20; max(50, 40) = 50 → sugerir 42.
	store.SeedItem(entity.InventoryItem{
		ID:                  "item-clavos",
		Name:                "Clavo 2.5\"",
		Unit:                "kg",
		AvailableQuantity:   dec("8"),
		WeightedAverageCost: dec("3.00"),
		ReorderPoint:        dec("20"),
		MaxStock:            dec("50"),
	})
	notifier := &capturingNotifier{}
	uc := appinventory.NewReplenishmentUseCase(store.Items(), notifier)

	suggestions, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.True(t, dec("42").Equal(s.SuggestedQuantity), "sugerido: esperado 42, obtenido %s", s.SuggestedQuantity)
	assert.True(t, dec("126.00").Equal(s.EstimatedCost), "costo estimado = sugerido * WAC")
	assert.Equal(t, 1, s.Priority)
	assert.Len(t, notifier.sent, 1)
}

// Cuando PuntoReorden*2 supera al StockMáximo, manda el doble del reorden.
func TestScan_DobleDelReordenSiSuperaMaximo(t *testing.T) {
	store := memory.NewStore()
	// max(30, 40) = 40 → sugerir 40 − 5 = 35.
	store.SeedItem(entity.InventoryItem{
		ID:                  "item-alambre",
		Name:                "Alambre recocido",
		Unit:                "kg",
		AvailableQuantity:   dec("5"),
		WeightedAverageCost: dec("4.00"),
		ReorderPoint:        dec("20"),
		MaxStock:            dec("30"),
	})
	uc := appinventory.NewReplenishmentUseCase(store.Items(), nil)

	suggestions, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.True(t, dec("35").Equal(suggestions[0].SuggestedQuantity))
}

// Ítems sobre su punto de reorden no generan sugerencia.
func TestScan_SobreElReordenNoSugiere(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:                "item-grava",
		Name:              "Grava 3/4",
		Unit:              "m3",
		AvailableQuantity: dec("100"),
		ReorderPoint:      dec("20"),
		MaxStock:          dec("150"),
	})
	uc := appinventory.NewReplenishmentUseCase(store.Items(), nil)

	suggestions, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

// La prioridad ordena por mayor déficit bajo el punto de reorden.
func TestScan_PrioridadPorDeficit(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem(entity.InventoryItem{
		ID:                "item-poco-urgente",
		Name:              "Arena",
		Unit:              "m3",
		AvailableQuantity: dec("18"),
		ReorderPoint:      dec("20"), // déficit 2
		MaxStock:          dec("60"),
	})
	store.SeedItem(entity.InventoryItem{
		ID:                "item-urgente",
		Name:              "Cemento gris 50kg",
		Unit:              "saco",
		AvailableQuantity: dec("2"),
		ReorderPoint:      dec("30"), // déficit 28
		MaxStock:          dec("80"),
	})
	uc := appinventory.NewReplenishmentUseCase(store.Items(), nil)

	suggestions, err := uc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "item-urgente", suggestions[0].ItemID, "el mayor déficit va primero")
	assert.Equal(t, 1, suggestions[0].Priority)
	assert.Equal(t, 2, suggestions[1].Priority)
}
