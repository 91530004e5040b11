package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo. Existencia y costo se manejan vía movimientos.
type ProductUseCase struct {
	repo             repository.ProductRepository
	defaultThreshold int
}

// NewProductUseCase construye el caso de uso. defaultThreshold es el umbral de reorden
// que reciben los productos creados sin uno explícito.
func NewProductUseCase(repo repository.ProductRepository, defaultThreshold int) *ProductUseCase {
	return &ProductUseCase{repo: repo, defaultThreshold: defaultThreshold}
}

// Create crea un producto con quantity = initial_quantity.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	barcode := strings.TrimSpace(in.Barcode)
	if barcode != "" {
		existing, err := uc.repo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("código de barras %s: %w", barcode, domain.ErrDuplicate)
		}
	}
	threshold := uc.defaultThreshold
	if in.ReorderThreshold != nil {
		threshold = *in.ReorderThreshold
	}
	product, err := entity.NewProduct(uuid.New().String(), in.Name, in.Brand, in.Category,
		in.PurchasePrice, in.SellingPrice, in.InitialQuantity, threshold, time.Now())
	if err != nil {
		return nil, err
	}
	product.Model = strings.TrimSpace(in.Model)
	product.Barcode = barcode
	product.Description = in.Description
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Los inactivos también se devuelven (histórico).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca un producto activo por código de barras (lector en caja).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, fmt.Errorf("código de barras %s: %w", barcode, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar existencia ni costo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Model != nil {
		product.Model = strings.TrimSpace(*in.Model)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if in.ReorderThreshold != nil {
		product.ReorderThreshold = *in.ReorderThreshold
	}
	if in.Barcode != nil {
		barcode := strings.TrimSpace(*in.Barcode)
		if barcode != "" && barcode != product.Barcode {
			other, err := uc.repo.GetByBarcode(ctx, barcode)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("código de barras %s: %w", barcode, domain.ErrDuplicate)
			}
		}
		product.Barcode = barcode
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete es lógico: el producto deja de venderse pero sigue en el histórico.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || !product.Active {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

// List lista productos activos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock devuelve los productos con quantity <= threshold.
// threshold < 0 usa el umbral de reorden de cada producto.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold < 0 {
		threshold = repository.UseReorderThreshold
	}
	list, err := uc.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}
