package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/application/sales"
	"github.com/jhoicas/Tienda-POS/internal/application/usecase"
)

// SaleHandler expone el cierre de venta, consultas y recibos.
type SaleHandler struct {
	uc        *usecase.SaleUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase, receiptUC *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Confirma el carrito en una sola transacción: venta, líneas, existencias, movimientos y puntos del cliente.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "EMPTY_CART, INVALID_QUANTITY, INVALID_TOTAL, VALIDATION"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      503   {object}  dto.ErrorResponse  "LOCK_TIMEOUT (reintentar)"
// @Failure      500   {object}  dto.ErrorResponse  "COMMIT_FAILED"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de ventas por periodo
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        to      query  string  false  "YYYY-MM-DD inclusive (default: hoy)"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) Report(c *fiber.Ctx) error {
	from, to, err := usecase.ParsePeriod(c.Query("from"), c.Query("to"), time.Now())
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	out, err := h.uc.Report(c.UserContext(), from, to, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receiptUC.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
