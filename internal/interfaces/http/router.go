package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Tienda-POS/internal/application/analytics"
	"github.com/jhoicas/Tienda-POS/internal/application/auth"
	"github.com/jhoicas/Tienda-POS/internal/application/inventory"
	"github.com/jhoicas/Tienda-POS/internal/application/sales"
	"github.com/jhoicas/Tienda-POS/internal/application/usecase"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *usecase.ProductUseCase
	CustomerUC      *usecase.CustomerUseCase
	SaleUC          *usecase.SaleUseCase
	ReceiptUC       *sales.ReceiptUseCase
	InventoryUC     *inventory.InventoryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	JWTSecret       string
	ServiceName     string
	// HealthCheck opcional (p. ej. ping a la base). nil = siempre ok.
	HealthCheck func(ctx context.Context) error
}

// NewApp crea la aplicación Fiber con el manejador de errores central y los middlewares comunes.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(RequestLogger(log))
	return app
}

// RequestLogger registra cada petición con su request id, estado y latencia.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler aún no corrió; usar el estado que va a responder.
			status, _ = mapError(err)
		}
		evt := log.Debug()
		if status >= fiber.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	saleRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/users", adminOnly, authHandler.ListUsers)

	// Products: lectura para todos, escritura admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.SaleUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/phone/:phone", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/sales", customerHandler.Sales)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	salesGroup.Post("/", saleRoles, saleHandler.Create)
	salesGroup.Get("/", saleHandler.Report)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReplenishmentUC)
	invGroup.Post("/receipts", stockRoles, inventoryHandler.Receive)
	invGroup.Post("/adjustments", stockRoles, inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/reconciliation", adminOnly, inventoryHandler.Reconcile)
	invGroup.Get("/replenishment", inventoryHandler.Replenishment)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
}
