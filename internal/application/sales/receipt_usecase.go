// Package sales arma el comprobante imprimible de una venta confirmada.
package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ReceiptData todo lo que necesita el generador; Customer es nil en venta de mostrador.
type ReceiptData struct {
	ShopName string
	Sale     *entity.Sale
	Customer *entity.Customer
	Lines    []ReceiptLine
}

// ReceiptGenerator produce el documento (PDF) a partir de los datos ya resueltos.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

// ReceiptUseCase genera el comprobante de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptGenerator
	shopName     string
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
	shopName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
		shopName:     shopName,
	}
}

// DownloadReceipt devuelve los bytes del PDF y un nombre de archivo sugerido.
// Los productos eliminados después de la venta siguen apareciendo con su nombre.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if s == nil {
		return nil, "", fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}

	data := ReceiptData{ShopName: uc.shopName, Sale: s}
	if s.CustomerID != "" {
		data.Customer, err = uc.customerRepo.GetByID(ctx, s.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
		}
	}

	names := make(map[string]string, len(s.Items))
	for _, it := range s.Items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener producto: %w", err)
		}
		names[it.ProductID] = it.ProductID
		if p != nil {
			names[it.ProductID] = p.Name
		}
	}
	for _, it := range s.Items {
		data.Lines = append(data.Lines, ReceiptLine{
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar: %w", err)
	}
	return pdfBytes, s.InvoiceNumber + ".pdf", nil
}
