package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/domain/loyalty"
)

func TestDefault_FloorOfTenth(t *testing.T) {
	p := loyalty.Default()
	cases := map[string]int{
		"0":      0,
		"9.99":   0,
		"10":     1,
		"55":     5,
		"230":    23,
		"4499.5": 449,
		"-40":    0,
	}
	for total, want := range cases {
		assert.Equal(t, want, p.Points(decimal.RequireFromString(total)), "total %s", total)
	}
}

func TestRate(t *testing.T) {
	p := loyalty.Rate{PointsPerUnit: decimal.RequireFromString("0.05")}
	assert.Equal(t, 5, p.Points(decimal.RequireFromString("100")))
	assert.Equal(t, 2, p.Points(decimal.RequireFromString("59.99")))
}

func TestTiered(t *testing.T) {
	p := loyalty.Tiered{
		Base: loyalty.Default(),
		Tiers: []loyalty.Tier{
			{MinTotal: decimal.NewFromInt(1000), Multiplier: decimal.NewFromInt(2)},
			{MinTotal: decimal.NewFromInt(5000), Multiplier: decimal.NewFromInt(3)},
		},
	}
	assert.Equal(t, 50, p.Points(decimal.NewFromInt(500)))
	assert.Equal(t, 200, p.Points(decimal.NewFromInt(1000)))
	assert.Equal(t, 1500, p.Points(decimal.NewFromInt(5000)))
}

func TestFromConfig(t *testing.T) {
	p, err := loyalty.FromConfig("divisor", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Points(decimal.NewFromInt(155)))

	p, err = loyalty.FromConfig("rate", 0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Points(decimal.NewFromInt(10)))

	_, err = loyalty.FromConfig("divisor", 0, 0)
	assert.Error(t, err)
	_, err = loyalty.FromConfig("escalonada", 10, 0)
	assert.Error(t, err)
}

func TestPolicyFunc(t *testing.T) {
	p := loyalty.PolicyFunc(func(decimal.Decimal) int { return 7 })
	assert.Equal(t, 7, p.Points(decimal.NewFromInt(1)))
}
