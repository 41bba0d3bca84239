package inventory_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/construplan/construplan-api/internal/domain/inventory"
)

// TestWeightedAverageCost_PrimeraEntrada con stock cero el costo nuevo es el
// precio de la entrada (escenario: 100 unidades a $10 → WAC 10.00).
func TestWeightedAverageCost_PrimeraEntrada(t *testing.T) {
	wac := inventory.WeightedAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(100), decimal.NewFromInt(10),
	)
	assert.True(t, wac.Equal(decimal.NewFromInt(10)), "WAC debe ser 10, fue %s", wac)
}

// TestWeightedAverageCost_Mezcla 100 @ $10 + 50 @ $20 → (1000+1000)/150 = 13.33...
func TestWeightedAverageCost_Mezcla(t *testing.T) {
	wac := inventory.WeightedAverageCost(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(20),
	)
	expected := decimal.NewFromInt(2000).Div(decimal.NewFromInt(150))
	assert.True(t, wac.Equal(expected), "WAC debe ser %s, fue %s", expected, wac)
	assert.Equal(t, "13.33", wac.Round(2).String())
}

// TestWeightedAverageCost_Acotado tras cualquier secuencia de entradas el WAC
// queda entre el precio mínimo y máximo recibido (propiedad de media móvil).
func TestWeightedAverageCost_Acotado(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		qty := decimal.Zero
		wac := decimal.Zero
		minPrice := decimal.Decimal{}
		maxPrice := decimal.Decimal{}
		for i := 0; i < 30; i++ {
			recv := decimal.NewFromInt(int64(rng.Intn(500) + 1))
			price := decimal.NewFromFloat(float64(rng.Intn(10000)+1) / 100)
			if i == 0 || price.LessThan(minPrice) {
				minPrice = price
			}
			if i == 0 || price.GreaterThan(maxPrice) {
				maxPrice = price
			}
			wac = inventory.WeightedAverageCost(qty, wac, recv, price)
			qty = qty.Add(recv)

			assert.True(t, wac.GreaterThanOrEqual(minPrice),
				"run %d entrada %d: WAC %s bajo el mínimo %s", run, i, wac, minPrice)
			assert.True(t, wac.LessThanOrEqual(maxPrice),
				"run %d entrada %d: WAC %s sobre el máximo %s", run, i, wac, maxPrice)
		}
	}
}

// TestWeightedAverageCost_SinDeriva muchas entradas al mismo precio no mueven el WAC.
func TestWeightedAverageCost_SinDeriva(t *testing.T) {
	price := decimal.RequireFromString("7.77")
	qty := decimal.Zero
	wac := decimal.Zero
	for i := 0; i < 1000; i++ {
		wac = inventory.WeightedAverageCost(qty, wac, decimal.NewFromInt(3), price)
		qty = qty.Add(decimal.NewFromInt(3))
	}
	assert.True(t, wac.Equal(price), "WAC debe seguir siendo %s, fue %s", price, wac)
}
