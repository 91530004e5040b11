package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
	"github.com/jhoicas/Tienda-POS/internal/domain/sale"
)

// SaleCommitter es el punto de escritura de ventas (checkout.Coordinator).
type SaleCommitter interface {
	CommitSale(ctx context.Context, cart *sale.Cart) (*entity.Sale, error)
}

// SaleUseCase arma el carrito desde la API y expone las lecturas de ventas.
type SaleUseCase struct {
	committer     SaleCommitter
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	analyticsRepo repository.AnalyticsRepository
}

func NewSaleUseCase(
	committer SaleCommitter,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	analyticsRepo repository.AnalyticsRepository,
) *SaleUseCase {
	return &SaleUseCase{
		committer:     committer,
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		analyticsRepo: analyticsRepo,
	}
}

// Create arma el carrito y lo confirma. Las líneas repetidas se fusionan.
func (uc *SaleUseCase) Create(ctx context.Context, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	cart := sale.NewCart()
	cart.CustomerID = in.CustomerID
	cart.Discount = in.Discount
	cart.Tax = in.Tax
	if in.PaymentMethod != "" {
		cart.PaymentMethod = in.PaymentMethod
	}
	cart.Notes = in.Notes
	cart.CashierID = cashierID
	for _, it := range in.Items {
		cart.AddItem(it.ProductID, it.Quantity)
	}
	s, err := uc.committer.CommitSale(ctx, cart)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// GetByID devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return ToSaleResponse(s), nil
}

// History devuelve las compras del cliente, más recientes primero, con sus líneas.
func (uc *SaleUseCase) History(ctx context.Context, customerID string) ([]dto.SaleResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
	}
	list, err := uc.saleRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSaleResponse(s))
	}
	return out, nil
}

// Report lista las ventas de [from, to) con el conteo y total del período completo.
func (uc *SaleUseCase) Report(ctx context.Context, from, to time.Time, limit, offset int) (*dto.SalesReportResponse, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: rango de fechas vacío", domain.ErrInvalidInput)
	}
	count, total, err := uc.analyticsRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.ListByDateRange(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SalesReportResponse{
		From:  from,
		To:    to,
		Count: count,
		Total: total.Round(2),
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: count},
	}, nil
}

// ToSaleResponse convierte la venta de dominio a DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerID:    s.CustomerID,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		PaymentStatus: s.PaymentStatus,
		Notes:         s.Notes,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Position:  it.Position,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return out
}
