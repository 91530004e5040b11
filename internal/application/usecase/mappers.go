package usecase

import (
	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Brand:            p.Brand,
		Model:            p.Model,
		Category:         p.Category,
		Barcode:          p.Barcode,
		Description:      p.Description,
		PurchasePrice:    p.PurchasePrice,
		SellingPrice:     p.SellingPrice,
		Quantity:         p.Quantity,
		InitialQuantity:  p.InitialQuantity,
		ReorderThreshold: p.ReorderThreshold,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		Notes:          c.Notes,
		TotalPurchases: c.TotalPurchases,
		LoyaltyPoints:  c.LoyaltyPoints,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
