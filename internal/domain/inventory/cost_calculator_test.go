package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-POS/internal/domain/inventory"
)

func TestCostCalculator(t *testing.T) {
	tests := []struct {
		name         string
		stock        int
		cost         string
		in           int
		inCost       string
		expectedCost string
	}{
		{"sin existencia toma el costo de entrada", 0, "0", 10, "4000", "4000"},
		{"promedia con la existencia actual", 10, "100", 10, "200", "150"},
		{"existencia negativa cuenta como cero", -3, "100", 5, "80", "80"},
		{"entrada cero con stock cero", 0, "100", 0, "80", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.CostCalculator(tt.stock, decimal.RequireFromString(tt.cost), tt.in, decimal.RequireFromString(tt.inCost))
			assert.True(t, decimal.RequireFromString(tt.expectedCost).Equal(got), "costo esperado %s, obtenido %s", tt.expectedCost, got)
		})
	}
}
