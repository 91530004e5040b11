package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/auth"
	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-POS/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func newAuth() *auth.AuthUseCase {
	store := memory.New(time.Second)
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Caja1@Tienda.co ", Password: "clave-segura", Role: entity.RoleVendedor})
	require.NoError(t, err)
	assert.Equal(t, "caja1@tienda.co", u.Email)
	assert.Equal(t, "caja1@tienda.co", u.Name)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "caja1@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestRegister_Validation(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "clave-segura", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "clave-segura"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Failures(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@tienda.co", Password: "clave-segura", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
