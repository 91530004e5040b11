package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

func TestReceiveStock_AddsUnitsAndAveragesCost(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "300", 10) // costo inicial 1
	coord := newCoordinator(store, checkout.Settings{})

	mov, err := coord.ReceiveStock(context.Background(), checkout.StockReceipt{
		ProductID: "A", Quantity: 10, UnitCost: dec("201"), UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, 10, mov.Quantity)
	assert.Empty(t, mov.SaleID)

	p, err := store.Products().GetByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 20, p.Quantity)
	assert.True(t, dec("101").Equal(p.PurchasePrice), "costo: %s", p.PurchasePrice)
	assertReconciled(t, store)
}

func TestReceiveStock_Validation(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "300", 10)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.ReceiveStock(context.Background(), checkout.StockReceipt{ProductID: "A", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = coord.ReceiveStock(context.Background(), checkout.StockReceipt{ProductID: "A", Quantity: 1, UnitCost: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = coord.ReceiveStock(context.Background(), checkout.StockReceipt{ProductID: "X", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 10, quantity(t, store, "A"))
}

func TestAdjustStock(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "300", 10)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.AdjustStock(context.Background(), checkout.StockAdjustment{ProductID: "A", Delta: -15})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, quantity(t, store, "A"))

	_, err = coord.AdjustStock(context.Background(), checkout.StockAdjustment{ProductID: "A", Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	mov, err := coord.AdjustStock(context.Background(), checkout.StockAdjustment{ProductID: "A", Delta: -4, Notes: "conteo"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.Equal(t, 6, quantity(t, store, "A"))

	_, err = coord.AdjustStock(context.Background(), checkout.StockAdjustment{ProductID: "A", Delta: 3})
	require.NoError(t, err)
	assert.Equal(t, 9, quantity(t, store, "A"))
	assertReconciled(t, store)
}
