package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

// Product representa un artículo de la tienda.
// Quantity solo cambia a través del libro de movimientos; InitialQuantity es la existencia
// con la que se creó el producto y nunca se modifica.
type Product struct {
	ID               string
	Name             string
	Brand            string
	Model            string
	Category         string
	Barcode          string // único si no está vacío
	Description      string
	PurchasePrice    decimal.Decimal // costo promedio ponderado
	SellingPrice     decimal.Decimal
	Quantity         int
	InitialQuantity  int
	ReorderThreshold int
	Active           bool // false = eliminado lógicamente; se conserva para el histórico de ventas
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewProduct construye un producto validando los campos obligatorios.
func NewProduct(id, name, brand, category string, purchase, selling decimal.Decimal, initialQty, reorderThreshold int, now time.Time) (*Product, error) {
	p := &Product{
		ID:               id,
		Name:             strings.TrimSpace(name),
		Brand:            strings.TrimSpace(brand),
		Category:         strings.TrimSpace(category),
		PurchasePrice:    purchase,
		SellingPrice:     selling,
		Quantity:         initialQty,
		InitialQuantity:  initialQty,
		ReorderThreshold: reorderThreshold,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if initialQty < 0 {
		return nil, fmt.Errorf("%w: la cantidad inicial no puede ser negativa", domain.ErrInvalidInput)
	}
	return p, nil
}

// Validate revisa los campos que protegen invariantes (precios no negativos, nombre, etc.).
func (p *Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	case p.Name == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	case p.Brand == "":
		return fmt.Errorf("%w: marca requerida", domain.ErrInvalidInput)
	case p.Category == "":
		return fmt.Errorf("%w: categoría requerida", domain.ErrInvalidInput)
	case p.PurchasePrice.IsNegative():
		return fmt.Errorf("%w: precio de compra negativo", domain.ErrInvalidInput)
	case p.SellingPrice.IsNegative():
		return fmt.Errorf("%w: precio de venta negativo", domain.ErrInvalidInput)
	case p.ReorderThreshold < 0:
		return fmt.Errorf("%w: umbral de reorden negativo", domain.ErrInvalidInput)
	}
	return nil
}

// IsLowStock indica si la existencia está en o por debajo del umbral dado.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Quantity <= threshold
}
