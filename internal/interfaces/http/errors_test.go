package http

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err       error
		status    int
		code      string
		retryable bool
	}{
		{&domain.LockTimeoutError{Resource: "producto p1", Err: context.DeadlineExceeded}, fiber.StatusServiceUnavailable, "LOCK_TIMEOUT", true},
		{&domain.CommitFailedError{Err: errors.New("conexión cerrada")}, fiber.StatusInternalServerError, "COMMIT_FAILED", false},
		{fmt.Errorf("producto x: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND", false},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", false},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", false},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", false},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_ERROR", false},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL", false},
	}
	for _, tc := range cases {
		status, body := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.Code)
		assert.Equal(t, tc.retryable, body.Retryable)
	}
}

func TestMapError_CommitFailedHidesCause(t *testing.T) {
	_, body := mapError(&domain.CommitFailedError{Err: errors.New("pq: relation \"sales\" does not exist")})
	assert.NotContains(t, body.Message, "relation")
}
