package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/inventory"
)

func TestReplenishment_SuggestionsAndPriority(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "A", 1, 3)  // déficit 2, sin ventas
	e.seed(t, "B", 3, 3)  // vende 1, queda en 2
	e.seed(t, "C", 10, 2) // sin necesidad
	e.seed(t, "E", 0, 0)  // agotado sin umbral
	e.sell(t, "B", 1)

	uc := inventory.NewReplenishmentUseCase(e.store.Products(), e.store.Analytics())
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "B", list[0].ProductID)
	assert.Equal(t, 1, list[0].UnitsSoldLast30d)
	assert.Equal(t, 4, list[0].SuggestedOrderQty) // 3*2 - 2
	assert.True(t, decimal.NewFromInt(40).Equal(list[0].EstimatedOrderCost))

	assert.Equal(t, "A", list[1].ProductID)
	assert.Equal(t, 5, list[1].SuggestedOrderQty) // 3*2 - 1

	assert.Equal(t, "E", list[2].ProductID)
	assert.Equal(t, 1, list[2].SuggestedOrderQty) // mínimo 1

	for i, s := range list {
		assert.Equal(t, i+1, s.Priority)
	}
}

func TestReplenishment_Empty(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "C", 10, 2)
	list, err := inventory.NewReplenishmentUseCase(e.store.Products(), e.store.Analytics()).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
