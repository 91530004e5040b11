// Package loyalty calcula los puntos de fidelidad que otorga una venta.
// Las políticas son funciones puras: no leen ni escriben estado.
package loyalty

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Policy convierte el total final de una venta en puntos.
type Policy interface {
	Points(total decimal.Decimal) int
}

// PolicyFunc adapta una función a Policy.
type PolicyFunc func(total decimal.Decimal) int

func (f PolicyFunc) Points(total decimal.Decimal) int { return f(total) }

// FixedDivisor otorga un punto por cada Divisor unidades del total, redondeando hacia abajo.
type FixedDivisor struct {
	Divisor decimal.Decimal
}

func (p FixedDivisor) Points(total decimal.Decimal) int {
	if !p.Divisor.IsPositive() || !total.IsPositive() {
		return 0
	}
	return int(total.Div(p.Divisor).Floor().IntPart())
}

// Rate otorga floor(total * PointsPerUnit) puntos.
type Rate struct {
	PointsPerUnit decimal.Decimal
}

func (p Rate) Points(total decimal.Decimal) int {
	if !p.PointsPerUnit.IsPositive() || !total.IsPositive() {
		return 0
	}
	return int(total.Mul(p.PointsPerUnit).Floor().IntPart())
}

// Tier multiplica los puntos base cuando el total alcanza MinTotal.
type Tier struct {
	MinTotal   decimal.Decimal
	Multiplier decimal.Decimal
}

// Tiered aplica el multiplicador del tramo más alto alcanzado sobre la política base.
type Tiered struct {
	Base  Policy
	Tiers []Tier
}

func (p Tiered) Points(total decimal.Decimal) int {
	base := p.Base.Points(total)
	tiers := make([]Tier, len(p.Tiers))
	copy(tiers, p.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinTotal.GreaterThan(tiers[j].MinTotal) })
	for _, t := range tiers {
		if total.GreaterThanOrEqual(t.MinTotal) {
			return int(decimal.NewFromInt(int64(base)).Mul(t.Multiplier).Floor().IntPart())
		}
	}
	return base
}

// Default es la política histórica de la tienda: un punto por cada 10 unidades.
func Default() Policy {
	return FixedDivisor{Divisor: decimal.NewFromInt(10)}
}

// FromConfig arma la política a partir de la configuración ("divisor" o "rate").
func FromConfig(name string, divisor, rate float64) (Policy, error) {
	switch name {
	case "", "divisor":
		if divisor <= 0 {
			return nil, fmt.Errorf("loyalty: divisor debe ser positivo, recibido %v", divisor)
		}
		return FixedDivisor{Divisor: decimal.NewFromFloat(divisor)}, nil
	case "rate":
		if rate <= 0 {
			return nil, fmt.Errorf("loyalty: rate debe ser positivo, recibido %v", rate)
		}
		return Rate{PointsPerUnit: decimal.NewFromFloat(rate)}, nil
	default:
		return nil, fmt.Errorf("loyalty: política desconocida %q", name)
	}
}
