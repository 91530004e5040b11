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

// CustomerUseCase administra datos de contacto. Compras y puntos solo los mueve el cierre de venta.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente. El teléfono es único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := entity.NewCustomer(uuid.New().String(), in.Name, in.Phone, time.Now())
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByPhone(ctx, customer.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("teléfono %s: %w", customer.Phone, domain.ErrDuplicate)
	}
	customer.Email = strings.TrimSpace(in.Email)
	customer.Address = strings.TrimSpace(in.Address)
	customer.Notes = in.Notes
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) GetByPhone(ctx context.Context, phone string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("teléfono %s: %w", phone, domain.ErrNotFound)
	}
	return toCustomerResponse(customer), nil
}

// Update modifica datos de contacto; TotalPurchases y LoyaltyPoints no se tocan.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != customer.Phone {
			other, err := uc.repo.GetByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("teléfono %s: %w", phone, domain.ErrDuplicate)
			}
		}
		customer.Phone = phone
	}
	if in.Email != nil {
		customer.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		customer.Address = strings.TrimSpace(*in.Address)
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
