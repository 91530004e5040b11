package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/application/usecase"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/memory"
)

func TestCustomerUseCase_CreateAndLookup(t *testing.T) {
	store := memory.New(time.Second)
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana Gómez", Phone: " 3001112233 ", Email: "ana@correo.co"})
	require.NoError(t, err)
	assert.Equal(t, "3001112233", c.Phone)
	assert.True(t, c.TotalPurchases.IsZero())
	assert.Zero(t, c.LoyaltyPoints)

	byPhone, err := uc.GetByPhone(ctx, "3001112233")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byPhone.ID)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Otra", Phone: "3001112233"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Sin teléfono"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_Update(t *testing.T) {
	store := memory.New(time.Second)
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "300"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Beto", Phone: "301"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, dto.UpdateCustomerRequest{Phone: strPtr("301")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	up, err := uc.Update(ctx, a.ID, dto.UpdateCustomerRequest{Phone: strPtr("302"), Address: strPtr("Calle 1")})
	require.NoError(t, err)
	assert.Equal(t, "302", up.Phone)
	assert.Equal(t, "Calle 1", up.Address)

	_, err = uc.GetByPhone(ctx, "300")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}
