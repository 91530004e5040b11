package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del cierre de venta. Los tipos de abajo envuelven estos centinelas,
// así que errors.Is funciona contra ambos.
var (
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTotal      = errors.New("total de venta inválido")
	ErrLockTimeout       = errors.New("tiempo de espera agotado al bloquear inventario")
	ErrCommitFailed      = errors.New("la venta no pudo completarse")
)

// InvalidQuantityError indica una línea con cantidad no positiva.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: producto %s, cantidad %d", ErrInvalidQuantity, e.ProductID, e.Quantity)
}

func (e *InvalidQuantityError) Is(target error) bool { return target == ErrInvalidQuantity }

// InsufficientStockError identifica el producto que no alcanza para la línea pedida.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s, solicitado %d, disponible %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidTotalError se devuelve cuando el total es cero o negativo,
// o cuando el descuento o el impuesto son negativos.
type InvalidTotalError struct {
	Total  decimal.Decimal
	Reason string
}

func (e *InvalidTotalError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrInvalidTotal, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTotal, e.Total.StringFixed(2))
}

func (e *InvalidTotalError) Is(target error) bool { return target == ErrInvalidTotal }

// LockTimeoutError es transitorio: no se escribió nada y el llamador puede reintentar.
type LockTimeoutError struct {
	Resource string
	Err      error
}

func (e *LockTimeoutError) Error() string {
	if e.Resource == "" {
		return ErrLockTimeout.Error()
	}
	return fmt.Sprintf("%s: %s", ErrLockTimeout, e.Resource)
}

func (e *LockTimeoutError) Is(target error) bool { return target == ErrLockTimeout }

func (e *LockTimeoutError) Unwrap() error { return e.Err }

// CommitFailedError envuelve cualquier fallo de almacenamiento durante el cierre.
// El llamador debe asumir que no se persistió nada.
type CommitFailedError struct {
	Err error
}

func (e *CommitFailedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCommitFailed, e.Err)
}

func (e *CommitFailedError) Is(target error) bool { return target == ErrCommitFailed }

func (e *CommitFailedError) Unwrap() error { return e.Err }

// IsRetryable indica si el error es transitorio (bloqueo) y el cierre puede reintentarse.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}
