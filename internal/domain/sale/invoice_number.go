package sale

import (
	"strings"
	"time"
)

// InvoiceNumber arma el número visible de la venta: V-AAAAMMDD-XXXXXXXX,
// con los primeros 8 caracteres del id de venta.
func InvoiceNumber(saleID string, at time.Time) string {
	suffix := strings.ReplaceAll(saleID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "V-" + at.Format("20060102") + "-" + strings.ToUpper(suffix)
}
