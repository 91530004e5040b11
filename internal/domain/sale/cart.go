package sale

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// Line es una línea del carrito: producto, cantidad pedida y precio mostrado en caja.
// El precio definitivo lo fija el cierre con el precio de venta vigente del producto.
type Line struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal = Quantity * UnitPrice.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart es el objeto de valor que arma la caja antes de cerrar la venta. No se persiste.
type Cart struct {
	CustomerID    string
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	PaymentMethod string
	Notes         string
	CashierID     string

	lines []Line
}

// NewCart crea un carrito vacío con pago en efectivo.
func NewCart() *Cart {
	return &Cart{PaymentMethod: entity.PaymentCash}
}

// AddItem agrega qty unidades del producto; si ya hay una línea para él, suma la cantidad.
func (c *Cart) AddItem(productID string, qty int) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: qty})
}

// AddPricedItem es AddItem con el precio que muestra la caja; el último precio gana.
func (c *Cart) AddPricedItem(productID string, qty int, unitPrice decimal.Decimal) {
	c.AddItem(productID, qty)
	c.lines[c.indexOf(productID)].UnitPrice = unitPrice
}

// RemoveItem quita la línea del producto, si existe.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Lines devuelve una copia de las líneas en el orden en que se agregaron.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Subtotal = Σ(qty * unit_price).
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Total = Subtotal - Discount + Tax, nunca menor que cero.
func (c *Cart) Total() decimal.Decimal {
	return ComputeTotal(c.Subtotal(), c.Discount, c.Tax)
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// ComputeTotal aplica descuento e impuesto al subtotal y recorta a cero.
func ComputeTotal(subtotal, discount, tax decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
