package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tienda-POS/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve ventas del día y del mes, inventario, clientes y top 5 de productos del mes.
// GET /api/dashboard/stats
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
