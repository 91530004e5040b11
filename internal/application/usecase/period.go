package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

const dateLayout = "2006-01-02"

// ParsePeriod convierte fechas YYYY-MM-DD en el rango [start, end).
// Sin fecha final usa hoy; sin fecha inicial, el primer día del mes de la fecha final.
// La fecha final es inclusiva: end es el inicio del día siguiente.
func ParsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	lastDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if endStr != "" {
		lastDay, err = time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha final inválida %q", domain.ErrInvalidInput, endStr)
		}
	}
	end = lastDay.AddDate(0, 0, 1)

	if startStr == "" {
		start = time.Date(lastDay.Year(), lastDay.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha inicial inválida %q", domain.ErrInvalidInput, startStr)
		}
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: la fecha inicial no puede ser posterior a la final", domain.ErrInvalidInput)
	}
	return start, end, nil
}
