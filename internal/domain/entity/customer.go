package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

// Customer representa un cliente de la tienda.
// TotalPurchases y LoyaltyPoints solo crecen, una vez por venta confirmada.
type Customer struct {
	ID             string
	Name           string
	Phone          string // único
	Email          string
	Address        string
	Notes          string
	TotalPurchases decimal.Decimal
	LoyaltyPoints  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCustomer construye un cliente sin compras ni puntos.
func NewCustomer(id, name, phone string, now time.Time) (*Customer, error) {
	c := &Customer{
		ID:             id,
		Name:           strings.TrimSpace(name),
		Phone:          strings.TrimSpace(phone),
		TotalPurchases: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	case c.Name == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	case c.Phone == "":
		return fmt.Errorf("%w: teléfono requerido", domain.ErrInvalidInput)
	}
	return nil
}
