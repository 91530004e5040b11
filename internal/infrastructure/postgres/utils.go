package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

// Códigos SQLSTATE que interesan al cierre.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isLockConflict agrupa los fallos transitorios de bloqueo: lock_timeout vencido,
// interbloqueo detectado o conflicto de serialización (REPEATABLE READ).
func isLockConflict(err error) bool {
	switch pgCode(err) {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure:
		return true
	}
	return false
}

// pageClause arma LIMIT/OFFSET sobre los placeholders dados. Un límite 0 devuelve todas las filas,
// igual que el store en memoria.
func pageClause(limitArg, offsetArg int) string {
	return fmt.Sprintf("LIMIT NULLIF($%d::int, 0) OFFSET $%d", limitArg, offsetArg)
}

// translateTxError convierte conflictos de bloqueo en domain.LockTimeoutError; el resto pasa igual.
func translateTxError(err error) error {
	if err == nil {
		return nil
	}
	if isLockConflict(err) {
		return &domain.LockTimeoutError{Resource: "postgres", Err: err}
	}
	return err
}
